package config

import (
	"time"
)

// FeedConfig is one feed definition file. Name is derived from the file name.
type FeedConfig struct {
	Name      string         `yaml:"-"`
	Feed      FeedInfo       `yaml:"feed"`
	Settings  FeedSettings   `yaml:"settings"`
	Analytics []AnalyticsDef `yaml:"analytics"`
	Network   []NetworkDef   `yaml:"network"`
	Items     []ItemDef      `yaml:"items"`
}

// FeedInfo holds the channel fields
type FeedInfo struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
	Language    string `yaml:"language"`
	Encoding    string `yaml:"encoding"`
	BaseURL     string `yaml:"base_url"`
	Generator   string `yaml:"generator"`
}

// FeedSettings controls how the feed is built
type FeedSettings struct {
	Enabled    *bool    `yaml:"enabled"`
	MaxItems   int      `yaml:"max_items"`
	Sanitize   bool     `yaml:"sanitize"`   // run item content through the HTML sanitizer
	Extensions []string `yaml:"extensions"` // registered in addition to the global list
}

type AnalyticsDef struct {
	Type   string `yaml:"type"`
	ID     string `yaml:"id"`
	Params string `yaml:"params"`
}

type NetworkDef struct {
	Type      string `yaml:"type"`
	TurboAdID string `yaml:"turbo_ad_id"`
	Content   string `yaml:"content"`
}

// ItemDef is one entry. Content and ContentFile are mutually exclusive;
// ContentFile is an HTML page, relative to the feeds directory, whose article
// body becomes the entry content.
type ItemDef struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Link        string        `yaml:"link"`
	Source      string        `yaml:"source"`
	Content     string        `yaml:"content"`
	ContentFile string        `yaml:"content_file"`
	Published   time.Time     `yaml:"published"`
	Updated     time.Time     `yaml:"updated"`
	Authors     []AuthorDef   `yaml:"authors"`
	Categories  []CategoryDef `yaml:"categories"`
}

type AuthorDef struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	URI   string `yaml:"uri"`
}

type CategoryDef struct {
	Term   string `yaml:"term"`
	Scheme string `yaml:"scheme"`
}
