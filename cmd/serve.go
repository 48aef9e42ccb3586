package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/inkit/internal/preview"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the preview server with hot reload",
	Long: `Start a preview server showing every button style against your
stylesheet. The stylesheet is linted on every change and open pages reload
over a WebSocket.

Examples:
  inkit serve                                  # http://localhost:8080
  inkit serve -p 3000 --stylesheet app.css     # custom port and stylesheet
  inkit serve --open=false --watch=false       # static preview`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to serve on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")
	serveCmd.Flags().StringP("stylesheet", "s", "styles/button.css", "Stylesheet to preview")
	serveCmd.Flags().Bool("open", false, "Open the preview in a browser")
	serveCmd.Flags().Bool("watch", true, "Reload when the stylesheet changes")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.open", serveCmd.Flags().Lookup("open"))
	viper.BindPFlag("preview.stylesheet", serveCmd.Flags().Lookup("stylesheet"))
	viper.BindPFlag("preview.watch", serveCmd.Flags().Lookup("watch"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	srv, err := preview.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Starting inkit preview at http://%s (stylesheet %s)\n", cfg.Addr(), cfg.Preview.Stylesheet)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	return srv.Shutdown(context.Background())
}
