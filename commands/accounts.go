package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/accounts"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
)

var (
	accountName     string
	accountParentID string
	accountRoles    []string
	assignRoles     []string
	assignUnselect  bool
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage accounts and per-account role assignments",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		items, err := accounts.NewService(apiClient).List(cmd.Context(), listOffset, listLimit)
		if err != nil {
			return err
		}
		rows := make([]table.Row, 0, len(items))
		for _, a := range items {
			rows = append(rows, table.Row{a.ID, a.Name, a.ParentID, joinList(a.Roles), a.Status})
		}
		renderTable(table.Row{"ID", "Name", "Parent", "Roles", "Status"}, rows)
		return nil
	},
}

var accountsGetCmd = &cobra.Command{
	Use:   "get <account-id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		a, err := accounts.NewService(apiClient).Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderTable(table.Row{"Field", "Value"}, []table.Row{
			{"ID", a.ID},
			{"Name", a.Name},
			{"Parent", a.ParentID},
			{"Roles", joinList(a.Roles)},
			{"Status", a.Status},
		})
		return nil
	},
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		a := &accounts.Account{Name: args[0], ParentID: accountParentID, Roles: accountRoles}
		created, err := accounts.NewService(apiClient).Create(cmd.Context(), a)
		if err != nil {
			return err
		}
		fmt.Printf("Created account %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var accountsDeleteCmd = &cobra.Command{
	Use:   "delete <account-id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleSuperAdmin); err != nil {
			return err
		}
		if err := accounts.NewService(apiClient).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted account %s\n", args[0])
		return nil
	},
}

var accountsRolesCmd = &cobra.Command{
	Use:   "roles <account-id> <user-id>",
	Short: "Show a user's role assignment in an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		mapping, err := accounts.NewService(apiClient).GetRoles(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		renderTable(table.Row{"Account", "User", "Roles"}, []table.Row{
			{mapping.AccountID, mapping.UserID, joinList(mapping.Roles)},
		})
		return nil
	},
}

var accountsAssignCmd = &cobra.Command{
	Use:   "assign <account-id> <user-id>",
	Short: "Replace a user's role assignment in an account",
	Long: `Assign fetches the user's current roles in the account, then submits
the difference against the roles given with --role as individual add and
remove operations. Passing --remove-all detaches the user entirely.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
			return err
		}
		service := accounts.NewService(apiClient)

		original, err := service.GetRoles(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		edited := *original
		edited.Roles = assignRoles
		edited.Selected = !assignUnselect

		_, changed, err := service.UpdateRoles(cmd.Context(), original, &edited)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("No changes")
			return nil
		}
		fmt.Printf("Updated roles for user %s in account %s\n", args[1], args[0])
		return nil
	},
}

func init() {
	accountsCmd.AddCommand(accountsListCmd, accountsGetCmd, accountsCreateCmd, accountsDeleteCmd, accountsRolesCmd, accountsAssignCmd)

	accountsListCmd.Flags().IntVar(&listOffset, "offset", 0, "page offset")
	accountsListCmd.Flags().IntVar(&listLimit, "limit", 50, "page size")

	accountsCreateCmd.Flags().StringVar(&accountParentID, "parent", "", "parent account ID")
	accountsCreateCmd.Flags().StringSliceVar(&accountRoles, "role", nil, "assignable role (repeatable)")

	accountsAssignCmd.Flags().StringSliceVar(&assignRoles, "role", nil, "desired role (repeatable)")
	accountsAssignCmd.Flags().BoolVar(&assignUnselect, "remove-all", false, "remove every role the user holds in the account")
}
