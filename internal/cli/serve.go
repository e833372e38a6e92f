// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ik5/heartbpm/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start an HTTP server that estimates the heart rate of uploaded recordings.

Endpoints:
  POST /api/health/analyze   multipart upload in the "audio" field
  GET  /health               liveness check`,
		Example: `  heartbpm serve
  heartbpm serve --host 127.0.0.1 --port 9090`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}

	fs := cmd.Flags()
	fs.String("host", "0.0.0.0", "listen address")
	fs.Int("port", 8080, "listen port")

	a.bind(fs, map[string]string{
		"server.host": "host",
		"server.port": "port",
	})

	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	if err := a.setup(); err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	est, err := a.cfg.NewEstimator()
	if err != nil {
		return err
	}

	if a.log.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	sc := a.cfg.Server
	srv := server.New(server.Config{
		Host:            sc.Host,
		Port:            sc.Port,
		MaxUploadBytes:  sc.MaxUploadBytes,
		RateLimit:       sc.RateLimit,
		RateBurst:       sc.RateBurst,
		ReadTimeout:     sc.ReadTimeout,
		WriteTimeout:    sc.WriteTimeout,
		ShutdownTimeout: sc.ShutdownTimeout,
		Load:            a.cfg.LoadOptions(),
	}, est, a.log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
