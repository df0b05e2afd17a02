package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/Simatwa/house-rental-management-system/internal/app"
	"github.com/Simatwa/house-rental-management-system/internal/controllers"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portal gateway for a browser UI",
		Long: `Serve the session, listings search, dashboard and payments as JSON on
the configured port. Only the configured app URL may call it cross-origin.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(rootOpts, cmd, "serve", func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if port == "" {
					port = a.Config.AppPort
				}

				if err := a.Session.Bootstrap(ctx); err != nil {
					utils.Logger.WithError(err).Warn("Starting without a restored session")
				}
				a.Currency.Load(ctx, a.API)

				router := controllers.NewRouter(a)
				c := cors.New(cors.Options{
					AllowedOrigins:   []string{a.Config.AppUrl},
					AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
					AllowedHeaders:   []string{"Content-Type", utils.RequestIDHeader},
					AllowCredentials: true,
				})

				srv := &http.Server{
					Addr:              ":" + port,
					Handler:           c.Handler(router),
					ReadHeaderTimeout: 10 * time.Second,
				}

				errCh := make(chan error, 1)
				go func() {
					utils.Logger.Infof("Starting %s on :%s", a.Config.AppName, port)
					errCh <- srv.ListenAndServe()
				}()

				select {
				case err := <-errCh:
					if errors.Is(err, http.ErrServerClosed) {
						return nil
					}
					return WrapExitError(ExitFailure, "server error", err)
				case <-ctx.Done():
					utils.Logger.Info("Shutting down gateway")
					shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()
					return srv.Shutdown(shutdownCtx)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default from config)")

	return cmd
}
