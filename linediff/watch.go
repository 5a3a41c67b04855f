package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/znkr/linediff/linediff/config"
	"github.com/znkr/linediff/linediff/logging"
	"github.com/znkr/linediff/linediff/server"
)

func newWatchCmd() *cobra.Command {
	var (
		f        flags
		httpAddr string
	)
	cmd := &cobra.Command{
		Use:   "watch <fileA> <fileB>",
		Short: "Compares two files again whenever one of them changes",
		Long: "Compares two files again whenever one of them changes. The differences are printed to " +
			"stdout or, with --http, served as an HTML report.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			if httpAddr != "" {
				cfg.Format = "html"
			}
			log := logging.New(cmd.ErrOrStderr(), f.verbose)
			w := &watcher{
				pathA: args[0],
				pathB: args[1],
				cfg:   cfg,
				color: useColor(cfg, cmd.OutOrStdout()),
				log:   log,
			}
			return w.run(cmd.Context(), cmd, httpAddr)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&httpAddr, "http", "", "serve the report as HTML at this address instead of printing it")
	return cmd
}

type watcher struct {
	pathA, pathB string
	cfg          config.Config
	color        bool
	log          zerolog.Logger
}

func (w *watcher) run(ctx context.Context, cmd *cobra.Command, httpAddr string) error {
	out, identical, err := compare(w.pathA, w.pathB, w.cfg, w.color, w.log)
	if err != nil {
		return err
	}

	// Without a server, errc stays nil and is never selected.
	var (
		srv  *server.Server
		errc <-chan error
	)
	if httpAddr != "" {
		srv, err = server.Run(httpAddr, out, w.log)
		if err != nil {
			return err
		}
		defer srv.Shutdown(context.Background())
		errc = srv.Error()
		w.log.Info().Msgf("Now serving at http://%s, press Ctrl-C to shut down", srv.Addr())
	} else {
		w.print(cmd.OutOrStdout(), out, identical)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %v", err)
	}
	defer fw.Close()

	// Watch the parent directories instead of the files themselves. Many editors replace files on
	// save, which would otherwise drop the watch.
	targets := make(map[string]bool)
	for _, p := range []string{w.pathA, w.pathB} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %v", p, err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("starting watch: %v", err)
		}
		w.log.Debug().Str("dir", dir).Msg("watching directory")
	}

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) || !targets[filepath.Clean(event.Name)] {
				continue
			}

			start := time.Now()
			out, identical, err := compare(w.pathA, w.pathB, w.cfg, w.color, w.log)
			if err != nil {
				w.log.Error().Err(err).Msg("failed to compare files")
				continue
			}
			if srv != nil {
				srv.ReplacePage(out)
			} else {
				w.print(cmd.OutOrStdout(), out, identical)
			}
			w.log.Info().Str("file", event.Name).Dur("elapsed", time.Since(start)).Msg("compared again")
		case err := <-fw.Errors:
			return fmt.Errorf("watching: %v", err)
		case err := <-errc:
			return fmt.Errorf("serving: %v", err)
		case <-ctx.Done():
			w.log.Info().Msg("shutting down")
			return nil
		}
	}
}

// print writes the result of a comparison to stdout, failures are logged.
func (w *watcher) print(stdout io.Writer, out []byte, identical bool) {
	if _, err := fmt.Fprintf(stdout, "==> %s %s <==\n", w.pathA, w.pathB); err != nil {
		w.log.Error().Err(err).Msg("failed to write output")
		return
	}
	if identical {
		out = []byte("no differences\n")
	}
	if _, err := stdout.Write(out); err != nil {
		w.log.Error().Err(err).Msg("failed to write output")
	}
}
