package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/controllers"
	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/session"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
	"github.com/Simatwa/house-rental-management-system/internal/validation"
)

type loginOptions struct {
	Username      string
	Password      string
	PasswordStdin bool
}

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Exchange a username and password for an access token. The token is
kept in the token file so later commands run as the same tenant.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "login", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				password := opts.Password
				if opts.PasswordStdin {
					pw, err := readSecret(cmd.InOrStdin())
					if err != nil {
						return WrapExitError(ExitCommandError, "unable to read password from stdin", err)
					}
					password = pw
				}

				req := dtos.LoginRequest{Username: strings.TrimSpace(opts.Username), Password: password}
				if err := validation.Check(req); err != nil {
					return err
				}
				if err := a.Session.Login(ctx, req.Username, req.Password); err != nil {
					return err
				}
				return renderSession(f, a.Session.State())
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "password")
	cmd.Flags().BoolVar(&opts.PasswordStdin, "password-stdin", false, "read the password from stdin")

	return cmd
}

func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Forget the stored session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "logout", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				a.Session.Logout()
				resp := dtos.LogoutResponse{
					SessionResponse: controllers.ToSessionResponse(a.Session.State()),
					Redirect:        utils.RootPath,
				}
				return f.Render(resp, func(w io.Writer) {
					fmt.Fprintln(w, "Logged out.")
				})
			})
		},
	}
}

func NewWhoAmICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the current session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "whoami", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				// An expired token is reported through the session state.
				if err := a.Session.Bootstrap(ctx); err != nil && !errors.Is(err, utils.ErrSessionExpired) {
					return err
				}
				return renderSession(f, a.Session.State())
			})
		},
	}
}

func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored access token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "rotate",
		Short:         "Swap the stored token for a fresh one",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(rootOpts, cmd, "token rotate", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if err := a.Session.RotateToken(ctx); err != nil {
					return err
				}
				return f.Render(map[string]bool{"rotated": true}, func(w io.Writer) {
					fmt.Fprintln(w, "Access token rotated.")
				})
			})
		},
	})

	return cmd
}

func renderSession(f *OutputFormatter, st session.State) error {
	return f.Render(controllers.ToSessionResponse(st), func(w io.Writer) {
		switch {
		case st.IsAuthenticated:
			fmt.Fprintf(w, "Logged in as %s (%s)\n", st.User.DisplayName(), st.User.Username)
		case st.Error != "":
			fmt.Fprintf(w, "Not logged in: %s\n", st.Error)
		default:
			fmt.Fprintln(w, "Not logged in.")
		}
	})
}

// readSecret reads the first line of r without its line ending.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
