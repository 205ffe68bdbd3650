package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/swarakshak/vidhaan/internal/app"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the vidhaan API server",
		Long:  "Loads the statutory corpus, assembles the retrieval engine, and serves\nthe HTTP API until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			log := cliCtx.Logger

			application, err := app.New(cmd.Context(), cliCtx.Config, log)
			if err != nil {
				return err
			}
			defer application.Close()

			errCh := make(chan error, 1)
			go func() {
				errCh <- application.Server.Start()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				log.Info("shutdown signal received", logging.String("signal", sig.String()))
				return application.Server.Shutdown(cmd.Context())
			}
		},
	}
}
