package renderer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/lysyi3m/rss-turbo/app/writer"
)

// Entry renders a writer.Entry as an RSS item. No field is mandatory.
type Entry struct {
	base
	entry *writer.Entry
}

func NewEntry(entry *writer.Entry) (*Entry, error) {
	reg := entry.Registry()
	b, err := newBase(reg, entry, reg.Extensions().EntryRenderer)
	if err != nil {
		return nil, err
	}
	return &Entry{base: b, entry: entry}, nil
}

// Render builds the item in a document of its own. Extensions declare their
// namespaces on the bound root, which is the feed's rss element when rendered
// as part of a feed.
func (r *Entry) Render() error {
	r.exceptions = nil

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", fmt.Sprintf(`version="1.0" encoding="%s"`, r.entry.Encoding()))
	item := doc.CreateElement("item")
	item.CreateAttr("turbo", "true")

	r.dom = doc
	r.element = item

	r.setDateCreated()
	r.setID(item)
	r.setTitle(item)
	r.setDateModified(item)
	r.setLink(item)
	r.setAuthors(item)
	r.setCategories(item)

	return r.renderExtensions(item)
}

// setDateCreated copies the creation date into dateModified when the latter is unset.
// The entry keeps the copied value after rendering.
func (r *Entry) setDateCreated() {
	created, ok := r.entry.DateCreated()
	if !ok {
		return
	}
	if _, ok := r.entry.DateModified(); !ok {
		r.entry.SetDateModified(created)
	}
}

func (r *Entry) setDateModified(item *etree.Element) {
	modified, ok := r.entry.DateModified()
	if !ok {
		return
	}
	item.CreateElement("pubDate").SetText(modified.Format(time.RFC1123Z))
}

func (r *Entry) setID(item *etree.Element) {
	id, ok := r.entry.ID()
	if !ok || id == "" {
		return
	}
	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", strconv.FormatBool(isURL(id)))
	guid.SetText(id)
}

func (r *Entry) setTitle(item *etree.Element) {
	title, ok := r.entry.Title()
	if !ok || title == "" {
		return
	}
	item.CreateElement("title").SetText(title)
}

func (r *Entry) setLink(item *etree.Element) {
	link, ok := r.entry.Link()
	if !ok || link == "" {
		return
	}
	item.CreateElement("link").SetText(link)
}

func (r *Entry) setAuthors(item *etree.Element) {
	authors, _ := r.entry.Authors()
	for _, a := range authors {
		text := a.Name
		if a.Email != "" {
			text = a.Email + " (" + a.Name + ")"
		}
		item.CreateElement("author").SetText(text)
	}
}

func (r *Entry) setCategories(item *etree.Element) {
	categories, _ := r.entry.Categories()
	for _, c := range categories {
		category := item.CreateElement("category")
		category.SetText(c.Term)
		if c.Scheme != "" {
			category.CreateAttr("domain", c.Scheme)
		}
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
