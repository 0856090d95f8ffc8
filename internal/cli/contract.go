package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/contracts"
	"github.com/jrsteele09/go-tenant-client/internal/utils"
)

// NewContractCommand creates the contract command group.
func NewContractCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Manage contracts and tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			list, err := app.Contracts.List(cmd.Context())
			if err != nil {
				return err
			}
			renderContracts(cmd.OutOrStdout(), list)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one contract",
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
			c, err := app.Contracts.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderContracts(cmd.OutOrStdout(), []contracts.Contract{*c})
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search contracts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			list, err := app.Contracts.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderContracts(cmd.OutOrStdout(), list)
			return nil
		},
	})

	var title, startDate string
	var providerID int64
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			c, err := app.Contracts.Create(cmd.Context(), contracts.CreatePayload{
				Title:             title,
				ServiceProviderID: providerID,
				StartDate:         startDate,
			})
			if err != nil {
				return err
			}
			renderContracts(cmd.OutOrStdout(), []contracts.Contract{*c})
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "contract title")
	create.Flags().Int64Var(&providerID, "vendor", 0, "service provider (vendor) id")
	create.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	create.MarkFlagRequired("title")
	create.MarkFlagRequired("vendor")
	create.MarkFlagRequired("start")
	cmd.AddCommand(create)

	var updTitle, updNotes string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a contract (only provided fields are sent)",
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
			patch := contracts.UpdatePayload{}
			if cmd.Flags().Changed("title") {
				patch.Title = utils.Ptr(updTitle)
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = utils.Ptr(updNotes)
			}
			c, err := app.Contracts.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			renderContracts(cmd.OutOrStdout(), []contracts.Contract{*c})
			return nil
		},
	}
	update.Flags().StringVar(&updTitle, "title", "", "contract title")
	update.Flags().StringVar(&updNotes, "notes", "", "free-form notes")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contract",
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
			return app.Contracts.Delete(cmd.Context(), id)
		},
	})

	cmd.AddCommand(newTagCommand(rootOpts))

	return cmd
}

func newTagCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage contract tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			tags, err := app.Contracts.ListTags(cmd.Context())
			if err != nil {
				return err
			}
			renderTags(cmd.OutOrStdout(), tags)
			return nil
		},
	})

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			var desc *string
			if description != "" {
				desc = utils.Ptr(description)
			}
			tag, err := app.Contracts.CreateTag(cmd.Context(), args[0], desc)
			if err != nil {
				return err
			}
			renderTags(cmd.OutOrStdout(), []contracts.Tag{*tag})
			return nil
		},
	}
	create.Flags().StringVar(&description, "description", "", "tag description")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag",
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
			return app.Contracts.DeleteTag(cmd.Context(), id)
		},
	})

	return cmd
}
