package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate to the UIDAM platform",
	Long: `Authenticate to the UIDAM platform with the OAuth2
authorization-code flow. A browser window opens for the platform's
hosted login page; the resulting session is cached locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flow, err := auth.NewFlow(
			cfg.GetBaseURL(),
			cfg.GetClientID(),
			cfg.GetScopes(),
			cfg.GetCallbackAddr(),
			store,
			auth.WithFlowLogger(logger),
		)
		if err != nil {
			return err
		}

		session, err := flow.Login(cmd.Context())
		if err != nil {
			return err
		}
		if err := tokenSource.SetSession(session); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s\n", session.DisplayName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		flow, err := auth.NewFlow(
			cfg.GetBaseURL(),
			cfg.GetClientID(),
			cfg.GetScopes(),
			cfg.GetCallbackAddr(),
			store,
			auth.WithFlowLogger(logger),
		)
		if err != nil {
			return err
		}

		session := tokenSource.Session()
		if err := flow.Logout(cmd.Context(), session, cfg.GetBaseURL()+api.RouteOAuth2Revoke); err != nil {
			return err
		}
		if err := tokenSource.SetSession(nil); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := tokenSource.Session()
		if err := auth.Require(session); err != nil {
			return err
		}

		fmt.Printf("User:    %s\n", session.DisplayName())
		if session.User != nil {
			fmt.Printf("Email:   %s\n", session.User.Email)
			fmt.Printf("Roles:   %s\n", joinList(session.User.Roles))
			if session.User.AccountID != "" {
				fmt.Printf("Account: %s\n", session.User.AccountID)
			}
		}
		fmt.Printf("Token expires: %s\n", session.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}
