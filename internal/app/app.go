package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/state"
	"github.com/five82/tally/internal/ui"
)

// Run boots the tally TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	deps, err := NewDeps(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()

	return RunWith(ctx, deps)
}

// RunPreview runs the TUI over PreviewDeps.
func RunPreview(ctx context.Context) error {
	deps, err := PreviewDeps(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()

	return RunWith(ctx, deps)
}

// RunWith starts the TUI over already-built dependencies.
func RunWith(ctx context.Context, deps *Deps) error {
	ctrl := deps.NewCounter()

	unsubscribe := ctrl.Store().Subscribe(func(s state.Snapshot) {
		deps.Logger.WithFields(logrus.Fields{
			"version": s.Version,
			"value":   s.Value(),
			"loading": s.IsLoading,
			"error":   s.ErrorMessage,
		}).Debug("state published")
	})
	defer unsubscribe()

	ctrl.Load(ctx)

	if err := ui.Run(ui.Options{
		Context:   ctx,
		Counter:   ctrl,
		Prefs:     deps.Prefs,
		PrefsPath: deps.PrefsPath,
		LogPath:   deps.LogPath,
		Logger:    deps.Logger.WithField("component", "ui"),
	}); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
