package cli

import (
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/internal/utils"
	"github.com/jrsteele09/go-tenant-client/tenants"
)

// NewSettingsCommand creates the tenant settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage tenant settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current tenant settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			s, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			renderSettings(cmd.OutOrStdout(), s)
			return nil
		},
	})

	var displayName, logoURL string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update tenant settings (only provided fields are sent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			patch := tenants.SettingsPatch{}
			if cmd.Flags().Changed("display-name") {
				patch.DisplayName = utils.Ptr(displayName)
			}
			if cmd.Flags().Changed("logo-url") {
				patch.LogoURL = utils.Ptr(logoURL)
			}
			s, err := app.Settings.Update(cmd.Context(), patch)
			if err != nil {
				return err
			}
			renderSettings(cmd.OutOrStdout(), s)
			return nil
		},
	}
	update.Flags().StringVar(&displayName, "display-name", "", "tenant display name")
	update.Flags().StringVar(&logoURL, "logo-url", "", "tenant logo URL")
	cmd.AddCommand(update)

	return cmd
}
