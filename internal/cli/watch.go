package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gcodegen/internal/logging"
	"gcodegen/internal/service"
	"gcodegen/internal/watcher"
)

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload and re-validate the settings file whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := a.service(false)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.Load(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			events := make(chan service.Event, 16)
			svc.EventBus().Subscribe(events)
			defer svc.EventBus().Unsubscribe(events)

			out := cmd.OutOrStdout()
			go func() {
				for {
					select {
					case ev := <-events:
						printEvent(out, ev)
					case <-ctx.Done():
						return
					}
				}
			}()

			w := watcher.New(svc.Path(), func() {
				if _, err := svc.Reload(); err != nil {
					logging.L().Debug("reload failed", "error", err)
				}
			}).WithDebounce(a.cfg.WatchDebounce())

			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", svc.Path())
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func printEvent(w io.Writer, ev service.Event) {
	payload, _ := ev.Payload.(map[string]string)
	switch ev.Type {
	case service.EventSettingsReloaded:
		fmt.Fprintf(w, "reloaded (fingerprint %s)\n", short(payload["fingerprint"]))
	case service.EventSettingsRejected:
		fmt.Fprintf(w, "rejected: %s\n", payload["error"])
	default:
		fmt.Fprintf(w, "%s\n", ev.Type)
	}
}

func short(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
