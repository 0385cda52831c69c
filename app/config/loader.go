package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/rss-turbo/app/errors"
)

var configExtensions = []string{".yml", ".yaml"}

// Loader reads feed definitions from a directory and keeps the loaded ones
type Loader struct {
	feedsDir string
	cache    map[string]*FeedConfig
	mu       sync.RWMutex
}

func NewLoader(feedsDir string) *Loader {
	return &Loader{
		feedsDir: feedsDir,
		cache:    make(map[string]*FeedConfig),
	}
}

func (l *Loader) FeedsDir() string {
	return l.feedsDir
}

// LoadAll loads every *.yml and *.yaml file. A missing directory yields no feeds.
func (l *Loader) LoadAll() (map[string]*FeedConfig, error) {
	if _, err := os.Stat(l.feedsDir); os.IsNotExist(err) {
		return map[string]*FeedConfig{}, nil
	}

	var files []string
	for _, ext := range configExtensions {
		matches, err := filepath.Glob(filepath.Join(l.feedsDir, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("failed to find %s files: %w", ext, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	for _, file := range files {
		fileName := filepath.Base(file)
		feedName := strings.TrimSuffix(fileName, filepath.Ext(fileName))

		config, err := l.loadFile(feedName, file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Configuration loaded", "feed", feedName, "enabled", config.Settings.IsEnabled(), "items", len(config.Items))
	}

	return l.GetConfigs(), nil
}

// LoadConfig loads <feedName>.yml, or <feedName>.yaml when the former is absent
func (l *Loader) LoadConfig(feedName string) (*FeedConfig, error) {
	for _, ext := range configExtensions {
		file := filepath.Join(l.feedsDir, feedName+ext)
		if _, err := os.Stat(file); err == nil {
			return l.loadFile(feedName, file)
		}
	}
	return nil, errors.Newf(errors.ErrConfig, "feed config with name '%s' not found", feedName).
		WithDetail("feed", feedName)
}

func (l *Loader) GetConfig(feedName string) (*FeedConfig, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	config, ok := l.cache[feedName]
	if !ok {
		return nil, errors.Newf(errors.ErrConfig, "feed config with name '%s' not found", feedName).
			WithDetail("feed", feedName)
	}
	return config, nil
}

func (l *Loader) GetConfigs() map[string]*FeedConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()

	configsCopy := make(map[string]*FeedConfig, len(l.cache))
	for k, v := range l.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (l *Loader) GetEnabledConfigs() map[string]*FeedConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()

	enabled := make(map[string]*FeedConfig)
	for k, v := range l.cache {
		if v.Settings.IsEnabled() {
			enabled[k] = v
		}
	}
	return enabled
}

func (l *Loader) loadFile(feedName, file string) (*FeedConfig, error) {
	config, err := l.parseConfig(file)
	if err != nil {
		return nil, err
	}
	config.Name = feedName

	if err := l.validate(config); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "invalid config %s", file).
			WithDetail("feed", feedName)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[feedName] = config

	return config, nil
}

func (l *Loader) parseConfig(file string) (*FeedConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config FeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)
	return &config, nil
}

func (l *Loader) setDefaults(config *FeedConfig) {
	if config.Feed.Encoding == "" {
		config.Feed.Encoding = "UTF-8"
	}
	if config.Settings.MaxItems == 0 {
		config.Settings.MaxItems = defaultMaxItems
	}
}

func (l *Loader) validate(config *FeedConfig) error {
	if config.Name == "" {
		return fmt.Errorf("feed name is required")
	}
	if config.Settings.MaxItems < 0 {
		return fmt.Errorf("max items must be non-negative")
	}

	for i, name := range config.Settings.Extensions {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("extension at index %d must not be empty", i)
		}
	}

	for i, a := range config.Analytics {
		if a.Type == "" || a.ID == "" {
			return fmt.Errorf("analytics at index %d must have type and id", i)
		}
	}

	for i, n := range config.Network {
		if n.Type == "" || n.TurboAdID == "" {
			return fmt.Errorf("network at index %d must have type and turbo_ad_id", i)
		}
	}

	for i, item := range config.Items {
		if item.Content != "" && item.ContentFile != "" {
			return fmt.Errorf("item at index %d must not set both content and content_file", i)
		}
		if item.ContentFile != "" && filepath.IsAbs(item.ContentFile) {
			return fmt.Errorf("item at index %d: content_file must be relative to the feeds directory", i)
		}
	}

	return nil
}
