// Package cli is the tenant-portal command line: one cobra command per
// rental API operation, plus the local gateway.
package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/config"
	"github.com/Simatwa/house-rental-management-system/internal/session"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// AppFactory builds the application the commands run against.
type AppFactory func() (*app.App, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	newApp  AppFactory
	once    sync.Once
	app     *app.App
	initErr error
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// DefaultAppFactory loads the config from file and environment and keeps
// the token in the configured token file.
func DefaultAppFactory() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return app.NewApp(cfg, nil, logNavigator())
}

// logNavigator stands in for the browser's full navigation after logout.
func logNavigator() session.Navigator {
	return session.NavigatorFunc(func(path string) {
		utils.Logger.Infof("Session ended; returning to %s", path)
	})
}

// NewRootCommand creates the root command. A nil factory means
// DefaultAppFactory.
func NewRootCommand(factory AppFactory) *cobra.Command {
	if factory == nil {
		factory = DefaultAppFactory
	}
	opts := &RootOptions{newApp: factory}

	cmd := &cobra.Command{
		Use:   "tenant-portal",
		Short: "Tenant portal for the house rental management system",
		Long: `Browse listings, manage your tenancy and pay rent against the
house rental management API, or serve the portal gateway for a browser UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Verbose {
				utils.SetVerbose()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Session
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoAmICommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	// Public business pages
	cmd.AddCommand(NewListingsCommand(opts))
	cmd.AddCommand(NewAboutCommand(opts))
	cmd.AddCommand(NewFAQsCommand(opts))
	cmd.AddCommand(NewTestimonialsCommand(opts))
	cmd.AddCommand(NewGalleriesCommand(opts))
	cmd.AddCommand(NewDocumentCommand(opts))
	cmd.AddCommand(NewContactCommand(opts))

	// Tenant area
	cmd.AddCommand(NewDashboardCommand(opts))
	cmd.AddCommand(NewUnitCommand(opts))
	cmd.AddCommand(NewHouseCommand(opts))
	cmd.AddCommand(NewMessagesCommand(opts))
	cmd.AddCommand(NewConcernsCommand(opts))
	cmd.AddCommand(NewFeedbackCommand(opts))
	cmd.AddCommand(NewTransactionsCommand(opts))
	cmd.AddCommand(NewPayCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewPasswordCommand(opts))

	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// Execute runs cmd and returns the process exit code. Errors a command
// already reported are not printed again; anything else, such as an
// unknown flag, goes to stderr as a usage error.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return ExitCommandError
	}
	if !exitErr.reported {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", exitErr)
	}
	return exitErr.Code
}

// App builds the application on first use so --help and flag errors
// never touch config or the token file.
func (o *RootOptions) App() (*app.App, error) {
	o.once.Do(func() {
		o.app, o.initErr = o.newApp()
		if o.initErr != nil {
			o.initErr = WrapExitError(ExitCommandError, "unable to initialise tenant-portal", o.initErr)
		}
	})
	return o.app, o.initErr
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
