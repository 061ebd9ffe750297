package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/scopes"
)

var (
	scopeDescription    string
	scopeAdministrative bool
)

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "Manage OAuth2 scopes",
}

var scopesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scopes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		items, err := scopes.NewService(apiClient).List(cmd.Context(), listOffset, listLimit)
		if err != nil {
			return err
		}
		rows := make([]table.Row, 0, len(items))
		for _, s := range items {
			rows = append(rows, table.Row{s.Name, s.Description, strconv.FormatBool(s.Administrative), strconv.FormatBool(s.Predefined)})
		}
		renderTable(table.Row{"Name", "Description", "Administrative", "Predefined"}, rows)
		return nil
	},
}

var scopesGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		s, err := scopes.NewService(apiClient).Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderTable(table.Row{"Field", "Value"}, []table.Row{
			{"Name", s.Name},
			{"Description", s.Description},
			{"Administrative", strconv.FormatBool(s.Administrative)},
			{"Predefined", strconv.FormatBool(s.Predefined)},
		})
		return nil
	},
}

var scopesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		s := &scopes.Scope{Name: args[0], Description: scopeDescription, Administrative: scopeAdministrative}
		created, err := scopes.NewService(apiClient).Create(cmd.Context(), s)
		if err != nil {
			return err
		}
		fmt.Printf("Created scope %s\n", created.Name)
		return nil
	},
}

var scopesEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a scope (only changed fields are submitted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		service := scopes.NewService(apiClient)

		original, err := service.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		edited := *original
		if cmd.Flags().Changed("description") {
			edited.Description = scopeDescription
		}
		if cmd.Flags().Changed("administrative") {
			edited.Administrative = scopeAdministrative
		}

		updated, changed, err := service.Update(cmd.Context(), original, &edited)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("No changes")
			return nil
		}
		fmt.Printf("Updated scope %s\n", updated.Name)
		return nil
	},
}

var scopesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		if err := scopes.NewService(apiClient).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted scope %s\n", args[0])
		return nil
	},
}

func init() {
	scopesCmd.AddCommand(scopesListCmd, scopesGetCmd, scopesCreateCmd, scopesEditCmd, scopesDeleteCmd)

	scopesListCmd.Flags().IntVar(&listOffset, "offset", 0, "page offset")
	scopesListCmd.Flags().IntVar(&listLimit, "limit", 50, "page size")

	for _, c := range []*cobra.Command{scopesCreateCmd, scopesEditCmd} {
		c.Flags().StringVar(&scopeDescription, "description", "", "scope description")
		c.Flags().BoolVar(&scopeAdministrative, "administrative", false, "restrict to administrative users")
	}
}
