package renderer

import (
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/uri"
	"github.com/lysyi3m/rss-turbo/app/writer"
)

const mediaNamespace = "http://search.yahoo.com/mrss/"

// Feed renders a writer.Feed as an RSS 2.0 document
type Feed struct {
	base
	feed *writer.Feed
}

// NewFeed loads the feed renderer extensions registered on the feed's registry
func NewFeed(feed *writer.Feed) (*Feed, error) {
	reg := feed.Registry()
	b, err := newBase(reg, feed, reg.Extensions().FeedRenderer)
	if err != nil {
		return nil, err
	}
	return &Feed{base: b, feed: feed}, nil
}

// Render builds a fresh document. The channel gets language, title, description
// and link, then extension markup, then one item per entry in insertion order.
func (r *Feed) Render() error {
	r.exceptions = nil

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", fmt.Sprintf(`version="1.0" encoding="%s"`, r.feed.Encoding()))
	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:media", mediaNamespace)

	r.dom = doc
	r.element = rss
	r.root = rss

	channel := rss.CreateElement("channel")

	r.setLanguage(channel)
	for _, set := range []func(*etree.Element) error{r.setTitle, r.setDescription, r.setLink} {
		if err := set(channel); err != nil {
			return err
		}
	}

	if err := r.renderExtensions(channel); err != nil {
		return err
	}

	for i, entry := range r.feed.Entries() {
		if err := r.renderEntry(channel, entry); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "entry %d", i)
		}
	}

	slog.Debug("Feed rendered", "entries", r.feed.Len(), "exceptions", len(r.exceptions))
	return nil
}

// renderEntry renders entry in its own document and copies the item into channel
func (r *Feed) renderEntry(channel *etree.Element, entry *writer.Entry) error {
	if err := entry.SetEncoding(r.feed.Encoding()); err != nil {
		return err
	}

	er, err := NewEntry(entry)
	if err != nil {
		return err
	}
	er.IgnoreExceptions(r.ignoreExceptions)
	er.SetType(r.Type())
	er.SetRootElement(r.root)
	if err := er.Render(); err != nil {
		return err
	}

	channel.AddChild(er.Element().Copy())
	r.exceptions = append(r.exceptions, er.Exceptions()...)
	return nil
}

func (r *Feed) setLanguage(channel *etree.Element) {
	language, ok := r.feed.Language()
	if !ok || language == "" {
		return
	}
	channel.CreateElement("language").SetText(language)
}

func (r *Feed) setTitle(channel *etree.Element) error {
	title, ok := r.feed.Title()
	if !ok || title == "" {
		return r.fail(missing("title", "RSS 2.0 feed elements MUST contain exactly one"+
			" title element but a title has not been set"))
	}
	channel.CreateElement("title").SetText(title)
	return nil
}

func (r *Feed) setDescription(channel *etree.Element) error {
	description, ok := r.feed.Description()
	if !ok || description == "" {
		return r.fail(missing("description", "RSS 2.0 feed elements MUST contain exactly one"+
			" description element but one has not been set"))
	}
	channel.CreateElement("description").SetText(description)
	return nil
}

// setLink marks the link as not a permalink when it is not a valid URI
func (r *Feed) setLink(channel *etree.Element) error {
	value, ok := r.feed.Link()
	if !ok || value == "" {
		return r.fail(missing("link", "RSS 2.0 feed elements MUST contain exactly one"+
			" link element but one has not been set"))
	}
	link := channel.CreateElement("link")
	link.SetText(value)
	if !uri.IsValid(value) {
		link.CreateAttr("isPermaLink", "false")
	}
	return nil
}
