package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/internal/utils"
	"github.com/jrsteele09/go-tenant-client/items"
)

// NewItemCommand creates the item command group. Items are read/create only.
func NewItemCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Browse and add items",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List items",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			list, err := app.Items.List(cmd.Context())
			if err != nil {
				return err
			}
			renderItems(cmd.OutOrStdout(), list)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one item",
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
			item, err := app.Items.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderItems(cmd.OutOrStdout(), []items.Item{*item})
			return nil
		},
	})

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Add an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			payload := items.CreatePayload{Name: args[0]}
			if description != "" {
				payload.Description = utils.Ptr(description)
			}
			item, err := app.Items.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			renderItems(cmd.OutOrStdout(), []items.Item{*item})
			return nil
		},
	}
	create.Flags().StringVar(&description, "description", "", "item description")
	cmd.AddCommand(create)

	return cmd
}
