package config

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lysyi3m/rss-turbo/app/content"
	"github.com/lysyi3m/rss-turbo/app/ext/turbo"
	"github.com/lysyi3m/rss-turbo/app/writer"
)

// Builder turns a feed definition into a populated writer.Feed
type Builder struct {
	feedsDir   string
	extensions []string
	generator  string
	extractor  *content.Extractor
	sanitizer  *content.Sanitizer
}

// NewBuilder registers extensions on every feed it builds, in addition to the
// ones a definition lists. generator is used when a definition sets none.
func NewBuilder(feedsDir string, extensions []string, generator string) *Builder {
	return &Builder{
		feedsDir:   feedsDir,
		extensions: extensions,
		generator:  generator,
		extractor:  content.NewExtractor(),
		sanitizer:  content.NewSanitizer(),
	}
}

// Build creates the feed against a registry of its own, so extensions listed by
// one definition do not leak into another.
func (b *Builder) Build(config *FeedConfig) (*writer.Feed, error) {
	reg := writer.NewRegistry()
	for _, names := range [][]string{b.extensions, config.Settings.Extensions} {
		for _, name := range names {
			if err := reg.Register(name); err != nil {
				return nil, fmt.Errorf("feed %s: %w", config.Name, err)
			}
		}
	}

	feed, err := writer.NewFeed(reg)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", config.Name, err)
	}

	if err := b.setChannel(feed, config); err != nil {
		return nil, fmt.Errorf("feed %s: %w", config.Name, err)
	}

	for i, a := range config.Analytics {
		if err := feed.AddAnalytics(turbo.Analytics{Type: a.Type, ID: a.ID, Params: a.Params}); err != nil {
			return nil, fmt.Errorf("feed %s: analytics %d: %w", config.Name, i, err)
		}
	}
	for i, n := range config.Network {
		if err := feed.AddNetwork(turbo.Network{Type: n.Type, TurboAdID: n.TurboAdID, Content: n.Content}); err != nil {
			return nil, fmt.Errorf("feed %s: network %d: %w", config.Name, i, err)
		}
	}

	items := config.Items
	if limit := config.Settings.GetMaxItems(); len(items) > limit {
		items = items[:limit]
	}

	for i, item := range items {
		entry, err := b.buildEntry(feed, config, item)
		if err != nil {
			return nil, fmt.Errorf("feed %s: item %d: %w", config.Name, i, err)
		}
		if err := feed.AddEntry(entry); err != nil {
			return nil, fmt.Errorf("feed %s: item %d: %w", config.Name, i, err)
		}
	}

	slog.Debug("Feed built", "feed", config.Name, "entries", feed.Len(), "extensions", reg.Extensions().EntryRenderer)
	return feed, nil
}

// setChannel leaves unset fields absent so rendering can report them
func (b *Builder) setChannel(feed *writer.Feed, config *FeedConfig) error {
	info := config.Feed

	setters := []struct {
		value string
		set   func(string) error
	}{
		{info.Encoding, feed.SetEncoding},
		{info.Title, feed.SetTitle},
		{info.Description, feed.SetDescription},
		{info.Link, feed.SetLink},
		{info.Language, feed.SetLanguage},
		{info.BaseURL, feed.SetBaseURL},
		{info.ID, feed.SetID},
		{cmp.Or(info.Generator, b.generator), feed.SetGenerator},
	}

	for _, s := range setters {
		if s.value == "" {
			continue
		}
		if err := s.set(s.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildEntry(feed *writer.Feed, config *FeedConfig, item ItemDef) (*writer.Entry, error) {
	entry, err := feed.CreateEntry()
	if err != nil {
		return nil, err
	}

	setters := []struct {
		value string
		set   func(string) error
	}{
		{item.ID, entry.SetID},
		{item.Title, entry.SetTitle},
		{item.Link, entry.SetLink},
		{item.Source, entry.SetSource},
	}
	for _, s := range setters {
		if s.value == "" {
			continue
		}
		if err := s.set(s.value); err != nil {
			return nil, err
		}
	}

	body, err := b.itemContent(item)
	if err != nil {
		return nil, err
	}
	if body != "" && config.Settings.Sanitize {
		body = b.sanitizer.Run(body)
	}
	if body != "" {
		if err := entry.SetContent(body); err != nil {
			return nil, err
		}
	}

	if !item.Published.IsZero() {
		entry.SetDateCreated(item.Published.In(time.Local))
	}
	if !item.Updated.IsZero() {
		entry.SetDateModified(item.Updated.In(time.Local))
	}

	for _, a := range item.Authors {
		if err := entry.AddAuthor(writer.Author{Name: a.Name, Email: a.Email, URI: a.URI}); err != nil {
			return nil, err
		}
	}
	for _, c := range item.Categories {
		if err := entry.AddCategory(writer.Category{Term: c.Term, Scheme: c.Scheme}); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// itemContent returns the inline content, or the article extracted from content_file
func (b *Builder) itemContent(item ItemDef) (string, error) {
	if item.ContentFile == "" {
		return item.Content, nil
	}

	path := filepath.Join(b.feedsDir, item.ContentFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read content file: %w", err)
	}

	extracted, err := b.extractor.Run(data, item.Link)
	if err != nil {
		return "", fmt.Errorf("content file %s: %w", item.ContentFile, err)
	}
	return extracted, nil
}
