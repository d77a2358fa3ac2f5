package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yacobolo/stylecfg/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-resolve whenever the config file or content changes",
	Long: `Resolve once, then watch the config file and every directory under the
content root. Each change triggers a fresh, independent resolution.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd.OutOrStdout(), buildSettings("text"), debounce)
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before re-resolving")
}

func runWatch(ctx context.Context, out io.Writer, s settings, debounce time.Duration) error {
	log := s.Options.Logger

	root := s.Options.Root
	if root == "" {
		root = filepath.Dir(s.ConfigPath)
	}

	w, err := watch.New(watch.Options{
		ConfigPath:       s.ConfigPath,
		Root:             root,
		Debounce:         debounce,
		RespectGitignore: s.Options.RespectGitignore,
		Logger:           log,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	resolveOnce := func() {
		if err := runResolve(out, s); err != nil && !errors.Is(err, errInvalidConfig) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}

	resolveOnce()
	log.WithFields(logrus.Fields{"root": root, "dirs": len(w.Dirs())}).Info("watching for changes")

	err = w.Run(ctx, func(_ context.Context, changed []string) {
		log.WithField("paths", changed).Debug("re-resolving")
		resolveOnce()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
