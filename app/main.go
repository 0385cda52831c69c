package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/lysyi3m/rss-turbo/app/cfg"
	"github.com/lysyi3m/rss-turbo/app/config"
	"github.com/lysyi3m/rss-turbo/app/renderer"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting RSS Turbo", "version", appCfg.Version, "feeds_dir", appCfg.FeedsDir, "output_dir", appCfg.OutputDir)

	if err := run(appCfg); err != nil {
		slog.Error("Failed to render feeds", "error", err)
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg) error {
	loader := config.NewLoader(appCfg.FeedsDir)
	if _, err := loader.LoadAll(); err != nil {
		return fmt.Errorf("failed to load configurations: %w", err)
	}

	configs := loader.GetEnabledConfigs()
	if len(configs) == 0 {
		slog.Warn("No enabled feed configurations found", "feeds_dir", appCfg.FeedsDir)
		return nil
	}

	if err := os.MkdirAll(appCfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	builder := config.NewBuilder(appCfg.FeedsDir, appCfg.Extensions, appCfg.Generator)
	opts := renderer.Options{IgnoreExceptions: appCfg.IgnoreExceptions}

	failed := 0
	for _, name := range names {
		if err := renderFeed(builder, configs[name], appCfg.OutputDir, opts); err != nil {
			slog.Error("Feed not rendered", "feed", name, "error", err)
			failed++
		}
	}

	slog.Info("Rendering complete", "feeds", len(names), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d feeds failed", failed, len(names))
	}
	return nil
}

func renderFeed(builder *config.Builder, feedCfg *config.FeedConfig, outputDir string, opts renderer.Options) error {
	feed, err := builder.Build(feedCfg)
	if err != nil {
		return err
	}

	out, exceptions, err := renderer.Export(feed, "rss", opts)
	if err != nil {
		return err
	}
	for _, exc := range exceptions {
		slog.Warn("Feed rendered with missing data", "feed", feedCfg.Name, "error", exc)
	}

	path := filepath.Join(outputDir, feedCfg.Name+".xml")
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Info("Feed rendered", "feed", feedCfg.Name, "entries", feed.Len(), "path", path, "bytes", len(out))
	return nil
}
