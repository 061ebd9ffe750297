package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/clients"
)

var (
	clientName            string
	clientSecret          string
	clientRedirectUris    []string
	clientScopes          []string
	clientGrantTypes      []string
	clientAccessValidity  int
	clientRefreshValidity int
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage registered OAuth2 clients",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List OAuth2 clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		items, err := clients.NewService(apiClient).List(cmd.Context(), listOffset, listLimit)
		if err != nil {
			return err
		}
		rows := make([]table.Row, 0, len(items))
		for _, c := range items {
			rows = append(rows, table.Row{c.ClientID, c.ClientName, joinList(c.GrantTypes), joinList(c.Scopes), c.Status})
		}
		renderTable(table.Row{"Client ID", "Name", "Grants", "Scopes", "Status"}, rows)
		return nil
	},
}

var clientsGetCmd = &cobra.Command{
	Use:   "get <client-id>",
	Short: "Show one OAuth2 client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		c, err := clients.NewService(apiClient).Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderTable(table.Row{"Field", "Value"}, []table.Row{
			{"Client ID", c.ClientID},
			{"Name", c.ClientName},
			{"Redirect URIs", joinList(c.RedirectUris)},
			{"Scopes", joinList(c.Scopes)},
			{"Grant types", joinList(c.GrantTypes)},
			{"Access token validity", strconv.Itoa(c.AccessTokenValidity)},
			{"Refresh token validity", strconv.Itoa(c.RefreshTokenValidity)},
			{"Status", c.Status},
		})
		return nil
	},
}

var clientsCreateCmd = &cobra.Command{
	Use:   "create <client-id>",
	Short: "Register an OAuth2 client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		c := &clients.Client{
			ClientID:             args[0],
			ClientName:           clientName,
			ClientSecret:         clientSecret,
			RedirectUris:         clientRedirectUris,
			Scopes:               clientScopes,
			GrantTypes:           clientGrantTypes,
			AccessTokenValidity:  clientAccessValidity,
			RefreshTokenValidity: clientRefreshValidity,
		}
		created, err := clients.NewService(apiClient).Create(cmd.Context(), c)
		if err != nil {
			return err
		}
		fmt.Printf("Registered client %s\n", created.ClientID)
		if created.ClientSecret != "" {
			fmt.Printf("Client secret (shown once): %s\n", created.ClientSecret)
		}
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit <client-id>",
	Short: "Edit an OAuth2 client (only changed fields are submitted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		service := clients.NewService(apiClient)

		original, err := service.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		edited := *original
		if cmd.Flags().Changed("name") {
			edited.ClientName = clientName
		}
		if cmd.Flags().Changed("redirect-uri") {
			edited.RedirectUris = clientRedirectUris
		}
		if cmd.Flags().Changed("scope") {
			edited.Scopes = clientScopes
		}
		if cmd.Flags().Changed("grant-type") {
			edited.GrantTypes = clientGrantTypes
		}
		if cmd.Flags().Changed("access-token-validity") {
			edited.AccessTokenValidity = clientAccessValidity
		}
		if cmd.Flags().Changed("refresh-token-validity") {
			edited.RefreshTokenValidity = clientRefreshValidity
		}

		updated, changed, err := service.Update(cmd.Context(), original, &edited)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("No changes")
			return nil
		}
		fmt.Printf("Updated client %s\n", updated.ClientID)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete an OAuth2 client registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		if err := clients.NewService(apiClient).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted client %s\n", args[0])
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd, clientsGetCmd, clientsCreateCmd, clientsEditCmd, clientsDeleteCmd)

	clientsListCmd.Flags().IntVar(&listOffset, "offset", 0, "page offset")
	clientsListCmd.Flags().IntVar(&listLimit, "limit", 50, "page size")

	for _, c := range []*cobra.Command{clientsCreateCmd, clientsEditCmd} {
		c.Flags().StringVar(&clientName, "name", "", "display name")
		c.Flags().StringSliceVar(&clientRedirectUris, "redirect-uri", nil, "redirect URI (repeatable)")
		c.Flags().StringSliceVar(&clientScopes, "scope", nil, "allowed scope (repeatable)")
		c.Flags().StringSliceVar(&clientGrantTypes, "grant-type", nil, "grant type (repeatable)")
		c.Flags().IntVar(&clientAccessValidity, "access-token-validity", 0, "access token lifetime in seconds")
		c.Flags().IntVar(&clientRefreshValidity, "refresh-token-validity", 0, "refresh token lifetime in seconds")
	}
	clientsCreateCmd.Flags().StringVar(&clientSecret, "secret", "", "client secret (confidential clients)")
}
