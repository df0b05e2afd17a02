package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// runFunc is the body of a command once the app is built.
type runFunc func(ctx context.Context, a *app.App, f *OutputFormatter) error

// run builds the app and executes fn, reporting any error through the
// formatter under action.
func run(opts *RootOptions, cmd *cobra.Command, action string, fn runFunc) error {
	f := opts.formatter(cmd)
	a, err := opts.App()
	if err != nil {
		return f.Fail(action, err)
	}
	if err := fn(cmd.Context(), a, f); err != nil {
		return f.Fail(action, err)
	}
	return nil
}

// runAuthed is run behind a restored session.
func runAuthed(opts *RootOptions, cmd *cobra.Command, action string, fn runFunc) error {
	return run(opts, cmd, action, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
		if err := requireSession(ctx, a); err != nil {
			return err
		}
		f.VerboseLog("Logged in as %s", a.Session.State().User.Username)
		a.Currency.Load(ctx, a.API)
		return fn(ctx, a, f)
	})
}

// requireSession restores the session from the token file and fails
// unless a tenant is logged in.
func requireSession(ctx context.Context, a *app.App) error {
	if err := a.Session.Bootstrap(ctx); err != nil {
		return err
	}
	if !a.Session.State().IsAuthenticated {
		return utils.ErrNotAuthenticated
	}
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q: must be a positive integer", arg))
	}
	return id, nil
}

func usageError(format string, args ...any) error {
	return NewExitError(ExitCommandError, fmt.Sprintf(format, args...))
}

// feedbackDetail renders the API's generic acknowledgement.
func feedbackDetail(detail any) string {
	switch d := detail.(type) {
	case nil:
		return "Done."
	case string:
		return d
	default:
		return fmt.Sprint(d)
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func isNotFound(err error) bool {
	return errors.Is(err, utils.ErrNotFound)
}
