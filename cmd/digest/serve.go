package main

import (
	"context"
	"errors"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tube-digest/internal/janitor"
	"github.com/nguyentantai21042004/tube-digest/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web form on the configured address",
	Example: `  digest serve
  DIGEST_ADDR=0.0.0.0:8080 digest serve --config prod.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		log := a.logger
		log.Info(ctx, "========================================")
		log.Info(ctx, "Offline Video Summarizer")
		log.Info(ctx, "========================================")
		log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
		log.Info(ctx, "Whisper: %s (%d threads, beam %d)", a.cfg.Whisper.ModelPath, a.cfg.Whisper.Threads, a.cfg.Whisper.BeamSize)
		log.Info(ctx, "Summarizer: %s %s", a.cfg.Summarizer.Backend, a.cfg.Summarizer.Model)
		log.Info(ctx, "Captions first: %v", a.cfg.CaptionsEnabled())
		log.Info(ctx, "Models are loaded on the first request")

		srv, err := web.New(web.Options{
			Addr:         a.cfg.Server.Addr,
			TemplatesDir: a.cfg.Server.TemplatesDir,
			Reload:       a.cfg.Server.Reload,
		}, a.processor, a.handles, log)
		if err != nil {
			return err
		}

		j := janitor.New(janitor.Options{
			Dir:      a.cfg.Paths.Downloads,
			Schedule: a.cfg.Janitor.Schedule,
			MaxAge:   a.cfg.Janitor.MaxAge,
		}, log)
		go func() {
			if err := j.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error(ctx, "Janitor error: %v", err)
			}
		}()

		if err := srv.Run(ctx); err != nil {
			return err
		}

		log.Info(context.Background(), "Video summarizer stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

