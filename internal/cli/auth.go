package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/internal/utils"
	"github.com/jrsteele09/go-tenant-client/session"
)

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			banner(app.Config.GetAppName())

			if email == "" {
				email, err = prompt(cmd, "Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = prompt(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			if err := app.Controller.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			user, err := app.Controller.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Email, user.TenantName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

// NewSignupCommand creates the signup command.
func NewSignupCommand(rootOpts *RootOptions) *cobra.Command {
	var req session.SignupRequest
	var firstName, lastName, subdomain string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}

			if req.Email == "" {
				req.Email, err = prompt(cmd, "Email: ")
				if err != nil {
					return err
				}
			}
			if req.Password == "" {
				req.Password, err = prompt(cmd, "Password: ")
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("first-name") {
				req.FirstName = utils.Ptr(firstName)
			}
			if cmd.Flags().Changed("last-name") {
				req.LastName = utils.Ptr(lastName)
			}
			if cmd.Flags().Changed("subdomain") {
				req.TenantSubdomain = utils.Ptr(subdomain)
			}

			if err := app.Controller.Signup(cmd.Context(), req); err != nil {
				return err
			}
			if app.Controller.IsAuthenticated() {
				fmt.Fprintf(cmd.OutOrStdout(), "Account created, logged in as %s\n", req.Email)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Account created. Run 'tenantctl login' to sign in.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&subdomain, "subdomain", "", "tenant subdomain to join")
	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the local session and notify the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			if err := app.Controller.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user and tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			user, err := app.Controller.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			renderUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

// NewSessionsCommand creates the sessions command group.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage backend sessions for the current user",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			sessions, err := app.Controller.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			renderSessions(cmd.OutOrStdout(), sessions)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <session-id>",
		Short: "Revoke one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			return app.Controller.RevokeSession(cmd.Context(), args[0])
		},
	})

	var keepCurrent bool
	revokeAll := &cobra.Command{
		Use:   "revoke-all",
		Short: "Revoke every session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			return app.Controller.RevokeAllSessions(cmd.Context(), keepCurrent)
		},
	}
	revokeAll.Flags().BoolVar(&keepCurrent, "keep-current", true, "keep the current session active")
	cmd.AddCommand(revokeAll)

	return cmd
}

// NewClearCommand creates the debug clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Wipe the stored token and all cached state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			app.Controller.DebugClear()
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared.")
			return nil
		},
	}
}

// NewPingCommand creates the ping command.
func NewPingCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check backend reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			if err := app.Client.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
