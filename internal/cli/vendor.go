package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/internal/utils"
	"github.com/jrsteele09/go-tenant-client/vendors"
)

// NewVendorCommand creates the vendor command group.
func NewVendorCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendor",
		Short: "Manage vendors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List vendors",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			list, err := app.Vendors.List(cmd.Context())
			if err != nil {
				return err
			}
			renderVendors(cmd.OutOrStdout(), list)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one vendor",
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
			v, err := app.Vendors.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderVendors(cmd.OutOrStdout(), []vendors.Vendor{*v})
			return nil
		},
	})

	var name, contactName, contactEmail, website, notes string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a vendor",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			payload := vendors.CreatePayload{Name: name}
			if contactName != "" {
				payload.ContactName = utils.Ptr(contactName)
			}
			if contactEmail != "" {
				payload.ContactEmail = utils.Ptr(contactEmail)
			}
			if website != "" {
				payload.Website = utils.Ptr(website)
			}
			if notes != "" {
				payload.Notes = utils.Ptr(notes)
			}
			v, err := app.Vendors.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			renderVendors(cmd.OutOrStdout(), []vendors.Vendor{*v})
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "vendor name")
	create.Flags().StringVar(&contactName, "contact-name", "", "contact name")
	create.Flags().StringVar(&contactEmail, "contact-email", "", "contact email")
	create.Flags().StringVar(&website, "website", "", "website URL")
	create.Flags().StringVar(&notes, "notes", "", "free-form notes")
	create.MarkFlagRequired("name")
	cmd.AddCommand(create)

	var updName, updEmail string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a vendor (only provided fields are sent)",
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
			patch := vendors.UpdatePayload{}
			if cmd.Flags().Changed("name") {
				patch.Name = utils.Ptr(updName)
			}
			if cmd.Flags().Changed("contact-email") {
				patch.ContactEmail = utils.Ptr(updEmail)
			}
			v, err := app.Vendors.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			renderVendors(cmd.OutOrStdout(), []vendors.Vendor{*v})
			return nil
		},
	}
	update.Flags().StringVar(&updName, "name", "", "vendor name")
	update.Flags().StringVar(&updEmail, "contact-email", "", "contact email")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vendor",
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
			return app.Vendors.Delete(cmd.Context(), id)
		},
	})

	return cmd
}
