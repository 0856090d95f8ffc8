package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/internal/utils"
	"github.com/jrsteele09/go-tenant-client/tenants"
)

// NewUserCommand creates the tenant-user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage tenant users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tenant users",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			list, err := app.TenantUsers.List(cmd.Context())
			if err != nil {
				return err
			}
			renderTenantUsers(cmd.OutOrStdout(), list)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one tenant user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			u, err := app.TenantUsers.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderTenantUsers(cmd.OutOrStdout(), &tenants.UserList{Users: []tenants.User{*u}, Total: 1})
			return nil
		},
	})

	var email, password, firstName, lastName, role string
	var isOwner bool
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a tenant user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			payload := tenants.CreateUserPayload{
				Email:    email,
				Password: password,
				Role:     role,
				IsOwner:  isOwner,
			}
			if firstName != "" {
				payload.FirstName = utils.Ptr(firstName)
			}
			if lastName != "" {
				payload.LastName = utils.Ptr(lastName)
			}
			u, err := app.TenantUsers.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			renderTenantUsers(cmd.OutOrStdout(), &tenants.UserList{Users: []tenants.User{*u}, Total: 1})
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "user email")
	create.Flags().StringVar(&password, "password", "", "initial password")
	create.Flags().StringVar(&firstName, "first-name", "", "first name")
	create.Flags().StringVar(&lastName, "last-name", "", "last name")
	create.Flags().StringVar(&role, "role", "member", "role string")
	create.Flags().BoolVar(&isOwner, "owner", false, "mark as tenant owner")
	create.MarkFlagRequired("email")
	create.MarkFlagRequired("password")
	cmd.AddCommand(create)

	var updRole string
	var updActive bool
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a tenant user (only provided fields are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			patch := tenants.UpdateUserPayload{}
			if cmd.Flags().Changed("role") {
				patch.Role = utils.Ptr(updRole)
			}
			if cmd.Flags().Changed("active") {
				patch.IsActive = utils.Ptr(updActive)
			}
			u, err := app.TenantUsers.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			renderTenantUsers(cmd.OutOrStdout(), &tenants.UserList{Users: []tenants.User{*u}, Total: 1})
			return nil
		},
	}
	update.Flags().StringVar(&updRole, "role", "", "role string")
	update.Flags().BoolVar(&updActive, "active", true, "active flag")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a tenant user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			return app.TenantUsers.Delete(cmd.Context(), id)
		},
	})

	return cmd
}
