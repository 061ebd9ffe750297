package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/roles"
)

var (
	roleDescription string
	roleScopes      []string
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage platform roles",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		items, err := roles.NewService(apiClient).List(cmd.Context(), listOffset, listLimit)
		if err != nil {
			return err
		}
		rows := make([]table.Row, 0, len(items))
		for _, r := range items {
			rows = append(rows, table.Row{r.Name, r.Description, joinList(r.Scopes)})
		}
		renderTable(table.Row{"Name", "Description", "Scopes"}, rows)
		return nil
	},
}

var rolesGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		r, err := roles.NewService(apiClient).Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderTable(table.Row{"Field", "Value"}, []table.Row{
			{"Name", r.Name},
			{"Description", r.Description},
			{"Scopes", joinList(r.Scopes)},
		})
		return nil
	},
}

var rolesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		r := &roles.Role{Name: args[0], Description: roleDescription, Scopes: roleScopes}
		created, err := roles.NewService(apiClient).Create(cmd.Context(), r)
		if err != nil {
			return err
		}
		fmt.Printf("Created role %s\n", created.Name)
		return nil
	},
}

var rolesEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a role (only changed fields are submitted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		service := roles.NewService(apiClient)

		original, err := service.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		edited := *original
		if cmd.Flags().Changed("description") {
			edited.Description = roleDescription
		}
		if cmd.Flags().Changed("scope") {
			edited.Scopes = roleScopes
		}

		updated, changed, err := service.Update(cmd.Context(), original, &edited)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("No changes")
			return nil
		}
		fmt.Printf("Updated role %s\n", updated.Name)
		return nil
	},
}

var rolesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		if err := roles.NewService(apiClient).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted role %s\n", args[0])
		return nil
	},
}

func init() {
	rolesCmd.AddCommand(rolesListCmd, rolesGetCmd, rolesCreateCmd, rolesEditCmd, rolesDeleteCmd)

	rolesListCmd.Flags().IntVar(&listOffset, "offset", 0, "page offset")
	rolesListCmd.Flags().IntVar(&listLimit, "limit", 50, "page size")

	for _, c := range []*cobra.Command{rolesCreateCmd, rolesEditCmd} {
		c.Flags().StringVar(&roleDescription, "description", "", "role description")
		c.Flags().StringSliceVar(&roleScopes, "scope", nil, "granted scope (repeatable)")
	}
}
