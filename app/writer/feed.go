package writer

import (
	"slices"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext"
	"github.com/lysyi3m/rss-turbo/app/ext/turbo"
	"github.com/lysyi3m/rss-turbo/app/uri"
)

const DefaultEncoding = "UTF-8"

const (
	keyTitle       = "title"
	keyDescription = "description"
	keyLink        = "link"
	keyLanguage    = "language"
	keyEncoding    = "encoding"
	keyBaseURL     = "baseUrl"
	keyGenerator   = "generator"
	keyID          = "id"
)

var _ ext.Data = (*Feed)(nil)

// Feed is the channel-level data container. It owns its entries in insertion order.
type Feed struct {
	registry   *Registry
	data       map[string]interface{}
	kind       string
	extensions augmenters
	entries    []*Entry
}

// NewFeed registers the core extensions on reg and attaches the feed augmenters
func NewFeed(reg *Registry) (*Feed, error) {
	if err := reg.RegisterCore(); err != nil {
		return nil, err
	}

	f := &Feed{
		registry: reg,
		data:     make(map[string]interface{}),
	}

	exts, err := loadAugmenters(reg, reg.Extensions().Feed, f)
	if err != nil {
		return nil, err
	}
	f.extensions = exts

	return f, nil
}

func (f *Feed) Registry() *Registry {
	return f.registry
}

func (f *Feed) Get(key string) (interface{}, bool) {
	v, ok := f.data[key]
	return v, ok
}

// Set stores a value without validation. It exists for extension-defined keys;
// core fields go through their typed setters.
func (f *Feed) Set(key string, value interface{}) {
	f.data[key] = value
}

func (f *Feed) Has(key string) bool {
	_, ok := f.data[key]
	return ok
}

func (f *Feed) Remove(key string) {
	delete(f.data, key)
}

// Reset drops every field. Entries and attached extensions are kept.
func (f *Feed) Reset() {
	f.data = make(map[string]interface{})
}

func (f *Feed) SetTitle(title string) error {
	if title == "" {
		return errors.Validation(keyTitle, "must be a non-empty string")
	}
	f.data[keyTitle] = title
	return nil
}

func (f *Feed) Title() (string, bool) {
	return f.str(keyTitle)
}

func (f *Feed) SetDescription(description string) error {
	if description == "" {
		return errors.Validation(keyDescription, "must be a non-empty string")
	}
	f.data[keyDescription] = description
	return nil
}

func (f *Feed) Description() (string, bool) {
	return f.str(keyDescription)
}

// SetLink sets the URL of the HTML page the feed describes
func (f *Feed) SetLink(link string) error {
	if link == "" || !uri.IsValid(link) {
		return errors.Validation(keyLink, "must be a non-empty string and valid URI/IRI")
	}
	f.data[keyLink] = link
	return nil
}

func (f *Feed) Link() (string, bool) {
	return f.str(keyLink)
}

func (f *Feed) SetLanguage(language string) error {
	if language == "" {
		return errors.Validation(keyLanguage, "must be a non-empty string")
	}
	f.data[keyLanguage] = language
	return nil
}

func (f *Feed) Language() (string, bool) {
	return f.str(keyLanguage)
}

// SetEncoding changes the document encoding and propagates it to attached extensions
func (f *Feed) SetEncoding(encoding string) error {
	if encoding == "" {
		return errors.Validation(keyEncoding, "must be a non-empty string")
	}
	f.data[keyEncoding] = encoding
	f.extensions.setEncoding(encoding)
	return nil
}

// Encoding defaults to UTF-8 when unset
func (f *Feed) Encoding() string {
	if enc, ok := f.str(keyEncoding); ok {
		return enc
	}
	return DefaultEncoding
}

func (f *Feed) SetBaseURL(baseURL string) error {
	if baseURL == "" || !uri.IsValid(baseURL) {
		return errors.Validation("url", "must be a non-empty string and valid URI/IRI")
	}
	f.data[keyBaseURL] = baseURL
	return nil
}

func (f *Feed) BaseURL() (string, bool) {
	return f.str(keyBaseURL)
}

func (f *Feed) SetGenerator(generator string) error {
	if generator == "" {
		return errors.Validation(keyGenerator, "must be a non-empty string")
	}
	f.data[keyGenerator] = generator
	return nil
}

func (f *Feed) Generator() (string, bool) {
	return f.str(keyGenerator)
}

// SetID accepts any absolute URI, including urn: and tag: identifiers
func (f *Feed) SetID(id string) error {
	if id == "" || !uri.IsValid(id) {
		return errors.Validation(keyID, "must be a non-empty string and valid URI/IRI")
	}
	f.data[keyID] = id
	return nil
}

func (f *Feed) ID() (string, bool) {
	return f.str(keyID)
}

// SetType records the kind ("rss" or "atom") the feed is being exported as
func (f *Feed) SetType(kind string) {
	f.kind = kind
}

func (f *Feed) Type() string {
	return f.kind
}

// CreateEntry builds an entry against the same registry. It is not added to the feed.
func (f *Feed) CreateEntry() (*Entry, error) {
	e, err := NewEntry(f.registry)
	if err != nil {
		return nil, err
	}
	if enc, ok := f.str(keyEncoding); ok {
		if err := e.SetEncoding(enc); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// AddEntry appends e to the channel. An entry belongs to exactly one feed.
func (f *Feed) AddEntry(e *Entry) error {
	if e == nil {
		return errors.Validation("entry", "must not be nil")
	}
	if e.owner != nil {
		if e.owner == f {
			return errors.Validation("entry", "entry is already part of this feed")
		}
		return errors.Validation("entry", "entry belongs to another feed")
	}
	e.owner = f
	f.entries = append(f.entries, e)
	return nil
}

func (f *Feed) RemoveEntry(index int) error {
	if index < 0 || index >= len(f.entries) {
		return errors.Validation("index", "entry index out of range")
	}
	f.entries[index].owner = nil
	f.entries = slices.Delete(f.entries, index, index+1)
	return nil
}

// Entries returns the entries in insertion order
func (f *Feed) Entries() []*Entry {
	return slices.Clone(f.entries)
}

func (f *Feed) Len() int {
	return len(f.entries)
}

// Call dispatches op to the attached feed augmenters
func (f *Feed) Call(op string, args ...interface{}) (interface{}, error) {
	return f.extensions.call(op, args)
}

// Extension returns the augmenter attached for the named extension, or nil
func (f *Feed) Extension(name string) ext.Augmenter {
	return f.extensions.get(FeedID(name))
}

func (f *Feed) ExtensionIDs() []string {
	return f.extensions.ids()
}

func (f *Feed) AddAnalytics(a turbo.Analytics) error {
	_, err := f.Call("addAnalytics", a)
	return err
}

func (f *Feed) Analytics() ([]turbo.Analytics, error) {
	v, err := f.Call("getAnalytics")
	if err != nil {
		return nil, err
	}
	records, _ := v.([]turbo.Analytics)
	return records, nil
}

func (f *Feed) AddNetwork(n turbo.Network) error {
	_, err := f.Call("addNetwork", n)
	return err
}

func (f *Feed) Network() ([]turbo.Network, error) {
	v, err := f.Call("getNetwork")
	if err != nil {
		return nil, err
	}
	records, _ := v.([]turbo.Network)
	return records, nil
}

func (f *Feed) str(key string) (string, bool) {
	v, ok := f.data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
