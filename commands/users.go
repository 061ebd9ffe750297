package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/users"
)

var (
	userName      string
	userEmail     string
	userPassword  string
	userFirstName string
	userLastName  string
	userRoles     []string
	userAccounts  []string

	userFilterRoles    []string
	userFilterAccounts []string
	userFilterStatus   []string

	listOffset int
	listLimit  int
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		items, err := users.NewService(apiClient).List(cmd.Context(), listOffset, listLimit)
		if err != nil {
			return err
		}
		renderUsers(items)
		return nil
	},
}

var usersFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Search users by role, account or status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		criteria := users.FilterCriteria{
			Roles:    userFilterRoles,
			Accounts: userFilterAccounts,
		}
		for _, s := range userFilterStatus {
			criteria.Status = append(criteria.Status, users.Status(s))
		}
		items, err := users.NewService(apiClient).Filter(cmd.Context(), criteria)
		if err != nil {
			return err
		}
		renderUsers(items)
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		user, err := users.NewService(apiClient).Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderUsers([]users.User{*user})
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
			return err
		}
		user := &users.User{
			UserName:  userName,
			Email:     userEmail,
			Password:  userPassword,
			FirstName: userFirstName,
			LastName:  userLastName,
			Roles:     userRoles,
			Accounts:  userAccounts,
		}
		created, err := users.NewService(apiClient).Create(cmd.Context(), user)
		if err != nil {
			return err
		}
		fmt.Printf("Created user %s (%s)\n", created.UserName, created.ID)
		return nil
	},
}

var usersEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a user (only changed fields are submitted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
			return err
		}
		service := users.NewService(apiClient)

		original, err := service.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		edited := *original
		if cmd.Flags().Changed("email") {
			edited.Email = userEmail
		}
		if cmd.Flags().Changed("first-name") {
			edited.FirstName = userFirstName
		}
		if cmd.Flags().Changed("last-name") {
			edited.LastName = userLastName
		}
		if cmd.Flags().Changed("role") {
			edited.Roles = userRoles
		}
		if cmd.Flags().Changed("account") {
			edited.Accounts = userAccounts
		}

		updated, changed, err := service.Update(cmd.Context(), original, &edited)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("No changes")
			return nil
		}
		fmt.Printf("Updated user %s\n", updated.ID)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session(), auth.RoleAdmin, auth.RoleSuperAdmin); err != nil {
			return err
		}
		if err := users.NewService(apiClient).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

func renderUsers(items []users.User) {
	rows := make([]table.Row, 0, len(items))
	for _, u := range items {
		rows = append(rows, table.Row{u.ID, u.UserName, u.Email, joinList(u.Roles), joinList(u.Accounts), string(u.Status)})
	}
	renderTable(table.Row{"ID", "Username", "Email", "Roles", "Accounts", "Status"}, rows)
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersFilterCmd, usersGetCmd, usersCreateCmd, usersEditCmd, usersDeleteCmd)

	for _, c := range []*cobra.Command{usersListCmd} {
		c.Flags().IntVar(&listOffset, "offset", 0, "page offset")
		c.Flags().IntVar(&listLimit, "limit", 50, "page size")
	}

	usersFilterCmd.Flags().StringSliceVar(&userFilterRoles, "role", nil, "filter by role (repeatable)")
	usersFilterCmd.Flags().StringSliceVar(&userFilterAccounts, "account", nil, "filter by account (repeatable)")
	usersFilterCmd.Flags().StringSliceVar(&userFilterStatus, "status", nil, "filter by status (repeatable)")

	for _, c := range []*cobra.Command{usersCreateCmd, usersEditCmd} {
		c.Flags().StringVar(&userEmail, "email", "", "email address")
		c.Flags().StringVar(&userFirstName, "first-name", "", "first name")
		c.Flags().StringVar(&userLastName, "last-name", "", "last name")
		c.Flags().StringSliceVar(&userRoles, "role", nil, "role name (repeatable)")
		c.Flags().StringSliceVar(&userAccounts, "account", nil, "account name (repeatable)")
	}
	usersCreateCmd.Flags().StringVar(&userName, "username", "", "unique username")
	usersCreateCmd.Flags().StringVar(&userPassword, "password", "", "initial password")
}
