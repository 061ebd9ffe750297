// Package commands implements the console's cobra command tree. Every
// command is a thin layer over a service wrapper: flags build the form,
// the service validates and talks to the platform, tables render the
// result.
package commands

import (
	"net/http"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/api"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/config"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/sessions"
)

var (
	configFile string
	verbose    bool

	cfg         config.Config
	logger      zerolog.Logger
	store       *sessions.Store
	tokenSource *auth.TokenSource
	apiClient   *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "uidamctl",
	Short: "Administrative console for the UIDAM identity platform",
	Long: `uidamctl manages users, OAuth2 clients, accounts, roles and scopes
of a UIDAM identity platform over its REST API.

Authenticate once with "uidamctl login"; the session is cached locally
and refreshed automatically until the platform rejects the refresh
token, at which point a new login is required.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.uidam/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(assistantCmd)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func initRuntime() error {
	if configFile != "" {
		loaded, err := config.NewWithFile(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = config.New()
	}

	logger = newLogger(cfg)
	store = sessions.NewStore(cfg.GetSessionFile())

	ts, err := auth.NewTokenSource(
		store,
		cfg.GetBaseURL()+api.RouteOAuth2Token,
		cfg.GetClientID(),
		auth.WithTokenLogger(logger),
	)
	if err != nil {
		return err
	}
	tokenSource = ts

	apiClient = api.NewClient(
		cfg.GetBaseURL(),
		api.WithTokenProvider(tokenSource),
		api.WithLogger(logger),
		api.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}),
	)
	return nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if cfg.GetEnv() == "DEV" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// renderTable prints rows in the console's standard table style.
func renderTable(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.SetStyle(table.StyleLight)
	t.Render()
}

// joinList renders a string slice for a table cell.
func joinList(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
