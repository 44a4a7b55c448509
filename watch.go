package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nsbbezerra/santa-maria-panel/internal/cache"
	"github.com/nsbbezerra/santa-maria-panel/internal/config"
	"github.com/nsbbezerra/santa-maria-panel/internal/panel"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [resource...]",
		Short: "Follow content collections and report changes",
		Long:  "Polls content collections at the configured interval and prints a line whenever one changes. With no arguments every collection is followed. Editing the config file triggers an immediate refresh. Ctrl-C exits.",
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := buildLogger()
	client := newPanelClient()
	store := cache.NewStore(client.Fetcher(), resolvedCfg.PollInterval, logger)
	opts := panel.ScreenOptions{PageSize: resolvedCfg.PageSize, Logger: logger}

	g, ctx := errgroup.WithContext(ctx)

	// Each entry starts one screen and hands back its revalidate and stop
	// hooks; the screen's update loop is registered on the group.
	starters := []struct {
		name  string
		start func() (revalidate, stop func())
	}{
		{"news", func() (func(), func()) {
			s := panel.NewNewsScreen(store, opts)
			followScreen(ctx, g, "news", s)
			return s.Revalidate, s.Stop
		}},
		{"videos", func() (func(), func()) {
			s := panel.NewVideosScreen(store, opts)
			followScreen(ctx, g, "videos", s)
			return s.Revalidate, s.Stop
		}},
		{"bids", func() (func(), func()) {
			s := panel.NewBidsScreen(store, opts)
			followScreen(ctx, g, "bids", s)
			return s.Revalidate, s.Stop
		}},
		{"publications", func() (func(), func()) {
			s := panel.NewPublicationsScreen(store, opts)
			followScreen(ctx, g, "publications", s)
			return s.Revalidate, s.Stop
		}},
		{"informatives", func() (func(), func()) {
			s := panel.NewInformativesScreen(store, opts)
			followScreen(ctx, g, "informatives", s)
			return s.Revalidate, s.Stop
		}},
		{"ordinances", func() (func(), func()) {
			s := panel.NewOrdinancesScreen(store, "", opts)
			followScreen(ctx, g, "ordinances", s)
			return s.Revalidate, s.Stop
		}},
		{"secretaries", func() (func(), func()) {
			s := panel.NewSecretariesScreen(store, opts)
			followScreen(ctx, g, "secretaries", s)
			return s.Revalidate, s.Stop
		}},
		{"desks", func() (func(), func()) {
			s := panel.NewDesksScreen(store, opts)
			followScreen(ctx, g, "desks", s)
			return s.Revalidate, s.Stop
		}},
		{"banners", func() (func(), func()) {
			s := panel.NewBannersScreen(store, opts)
			followScreen(ctx, g, "banners", s)
			return s.Revalidate, s.Stop
		}},
	}

	wanted := make(map[string]bool, len(args))
	for _, arg := range args {
		wanted[arg] = true
	}

	var revalidate []func()

	for _, entry := range starters {
		if len(wanted) > 0 && !wanted[entry.name] {
			continue
		}

		delete(wanted, entry.name)

		kick, stopScreen := entry.start()
		defer stopScreen()
		revalidate = append(revalidate, kick)
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}

		return fmt.Errorf("unknown resource(s): %s", strings.Join(unknown, ", "))
	}

	// An edit to the config file forces an immediate refresh of every
	// subscription. A base URL change still needs a restart because the
	// transport client is built once at startup.
	changes, err := config.Watch(ctx, resolvedCfg.ConfigPath, logger)
	if err != nil {
		logger.Warn("config watcher unavailable", slog.String("error", err.Error()))
	} else {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-changes:
					statusf("config changed, refreshing\n")

					for _, kick := range revalidate {
						kick()
					}
				}
			}
		})
	}

	statusf("watching %s every %s\n", resolvedCfg.BaseURL, resolvedCfg.PollInterval)

	return g.Wait()
}

// followScreen consumes one screen's update signals and prints a summary
// line per refresh.
func followScreen[T any](ctx context.Context, g *errgroup.Group, name string, screen *panel.Screen[T]) {
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil

			case <-screen.Updates():
				if err := screen.Sync(); err != nil {
					fmt.Printf("%-14s decode error: %v\n", name, err)
					continue
				}

				if err := screen.Err(); err != nil {
					fmt.Printf("%-14s poll failed (serving %d stale items): %v\n",
						name, len(screen.Visible()), err)
					continue
				}

				fmt.Printf("%-14s %d items, page %d/%d, fetched %s\n",
					name, len(screen.Visible()), screen.Page(), screen.TotalPages(),
					screen.LastFetchedAt().Format("15:04:05"))
			}
		}
	})
}
