package writer

import (
	"slices"
	"time"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext"
	"github.com/lysyi3m/rss-turbo/app/uri"
)

const (
	keyAuthors      = "authors"
	keyCategories   = "categories"
	keyContent      = "content"
	keySource       = "source"
	keyDateCreated  = "dateCreated"
	keyDateModified = "dateModified"
)

// Author of an entry. Rendered as "email (name)" when Email is set.
type Author struct {
	Name  string
	Email string
	URI   string
}

// Category of an entry. Scheme becomes the RSS domain attribute.
type Category struct {
	Term   string
	Scheme string
}

var _ ext.Data = (*Entry)(nil)

// Entry is the item-level data container
type Entry struct {
	registry   *Registry
	owner      *Feed
	data       map[string]interface{}
	kind       string
	extensions augmenters
}

// NewEntry registers the core extensions on reg and attaches the entry augmenters
func NewEntry(reg *Registry) (*Entry, error) {
	if err := reg.RegisterCore(); err != nil {
		return nil, err
	}

	e := &Entry{
		registry: reg,
		data:     make(map[string]interface{}),
	}

	exts, err := loadAugmenters(reg, reg.Extensions().Entry, e)
	if err != nil {
		return nil, err
	}
	e.extensions = exts

	return e, nil
}

func (e *Entry) Registry() *Registry {
	return e.registry
}

func (e *Entry) Get(key string) (interface{}, bool) {
	v, ok := e.data[key]
	return v, ok
}

func (e *Entry) Set(key string, value interface{}) {
	e.data[key] = value
}

func (e *Entry) Has(key string) bool {
	_, ok := e.data[key]
	return ok
}

func (e *Entry) Remove(key string) {
	delete(e.data, key)
}

func (e *Entry) AddAuthor(author Author) error {
	if err := validateAuthor(author); err != nil {
		return err
	}
	authors, _ := e.Authors()
	e.data[keyAuthors] = append(authors, author)
	return nil
}

// AddAuthors validates every author before adding any of them
func (e *Entry) AddAuthors(authors []Author) error {
	for _, a := range authors {
		if err := validateAuthor(a); err != nil {
			return err
		}
	}
	existing, _ := e.Authors()
	e.data[keyAuthors] = append(existing, authors...)
	return nil
}

func (e *Entry) Authors() ([]Author, bool) {
	v, ok := e.data[keyAuthors]
	if !ok {
		return nil, false
	}
	authors, _ := v.([]Author)
	return slices.Clone(authors), true
}

func validateAuthor(a Author) error {
	if a.Name == "" {
		return errors.Validation("name", "author must include a non-empty name")
	}
	if a.URI != "" && !uri.IsValid(a.URI) {
		return errors.Validation("uri", "must be a non-empty string and valid URI/IRI")
	}
	return nil
}

func (e *Entry) AddCategory(category Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	categories, _ := e.Categories()
	e.data[keyCategories] = append(categories, category)
	return nil
}

func (e *Entry) AddCategories(categories []Category) error {
	for _, c := range categories {
		if err := validateCategory(c); err != nil {
			return err
		}
	}
	existing, _ := e.Categories()
	e.data[keyCategories] = append(existing, categories...)
	return nil
}

func (e *Entry) Categories() ([]Category, bool) {
	v, ok := e.data[keyCategories]
	if !ok {
		return nil, false
	}
	categories, _ := v.([]Category)
	return slices.Clone(categories), true
}

func validateCategory(c Category) error {
	if c.Term == "" {
		return errors.Validation("term", "each category must contain a machine readable term")
	}
	if c.Scheme != "" && !uri.IsValid(c.Scheme) {
		return errors.Validation("scheme", "the RSS domain of a category must be a valid URI")
	}
	return nil
}

func (e *Entry) SetTitle(title string) error {
	if title == "" {
		return errors.Validation(keyTitle, "must be a non-empty string")
	}
	e.data[keyTitle] = title
	return nil
}

func (e *Entry) Title() (string, bool) {
	return e.str(keyTitle)
}

func (e *Entry) SetID(id string) error {
	if id == "" {
		return errors.Validation(keyID, "must be a non-empty string")
	}
	e.data[keyID] = id
	return nil
}

func (e *Entry) ID() (string, bool) {
	return e.str(keyID)
}

func (e *Entry) SetContent(content string) error {
	if content == "" {
		return errors.Validation(keyContent, "must be a non-empty string")
	}
	e.data[keyContent] = content
	return nil
}

func (e *Entry) Content() (string, bool) {
	return e.str(keyContent)
}

// SetSource sets the URL of the original article
func (e *Entry) SetSource(source string) error {
	if source == "" || !uri.IsValid(source) {
		return errors.Validation(keySource, "must be a non-empty string and valid URI/IRI")
	}
	e.data[keySource] = source
	return nil
}

func (e *Entry) Source() (string, bool) {
	return e.str(keySource)
}

func (e *Entry) SetLink(link string) error {
	if link == "" || !uri.IsValid(link) {
		return errors.Validation(keyLink, "must be a non-empty string and valid URI/IRI")
	}
	e.data[keyLink] = link
	return nil
}

func (e *Entry) Link() (string, bool) {
	return e.str(keyLink)
}

// SetDateCreated stores t; the zero time means now
func (e *Entry) SetDateCreated(t time.Time) {
	if t.IsZero() {
		t = time.Now()
	}
	e.data[keyDateCreated] = t
}

func (e *Entry) SetDateCreatedUnix(sec int64) {
	e.data[keyDateCreated] = time.Unix(sec, 0).UTC()
}

func (e *Entry) DateCreated() (time.Time, bool) {
	return e.date(keyDateCreated)
}

// SetDateModified stores t; the zero time means now
func (e *Entry) SetDateModified(t time.Time) {
	if t.IsZero() {
		t = time.Now()
	}
	e.data[keyDateModified] = t
}

func (e *Entry) SetDateModifiedUnix(sec int64) {
	e.data[keyDateModified] = time.Unix(sec, 0).UTC()
}

func (e *Entry) DateModified() (time.Time, bool) {
	return e.date(keyDateModified)
}

func (e *Entry) SetEncoding(encoding string) error {
	if encoding == "" {
		return errors.Validation(keyEncoding, "must be a non-empty string")
	}
	e.data[keyEncoding] = encoding
	e.extensions.setEncoding(encoding)
	return nil
}

func (e *Entry) Encoding() string {
	if enc, ok := e.str(keyEncoding); ok {
		return enc
	}
	return DefaultEncoding
}

func (e *Entry) SetType(kind string) {
	e.kind = kind
}

func (e *Entry) Type() string {
	return e.kind
}

// Feed returns the feed the entry was added to, or nil
func (e *Entry) Feed() *Feed {
	return e.owner
}

func (e *Entry) Call(op string, args ...interface{}) (interface{}, error) {
	return e.extensions.call(op, args)
}

func (e *Entry) Extension(name string) ext.Augmenter {
	return e.extensions.get(EntryID(name))
}

func (e *Entry) ExtensionIDs() []string {
	return e.extensions.ids()
}

func (e *Entry) str(key string) (string, bool) {
	v, ok := e.data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (e *Entry) date(key string) (time.Time, bool) {
	v, ok := e.data[key]
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}
