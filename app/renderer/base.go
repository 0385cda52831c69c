package renderer

import (
	"log/slog"

	"github.com/beevik/etree"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext"
	"github.com/lysyi3m/rss-turbo/app/writer"
)

type extension struct {
	id       string
	renderer ext.Renderer
}

// base holds what the feed and entry renderers share: the bound container,
// the document being built, the extension renderers and the collected errors.
type base struct {
	registry         *writer.Registry
	container        ext.Data
	dom              *etree.Document
	element          *etree.Element
	root             *etree.Element
	kind             string
	ignoreExceptions bool
	exceptions       []error
	extensions       []extension
}

func newBase(reg *writer.Registry, container ext.Data, ids []string) (base, error) {
	b := base{
		registry:  reg,
		container: container,
	}

	resolver := reg.Resolver()
	for _, id := range ids {
		instance, err := resolver.Get(id)
		if err != nil {
			return base{}, errors.Wrapf(err, errors.ErrResolution, "unable to load renderer extension %q", id)
		}
		r, ok := instance.(ext.Renderer)
		if !ok {
			return base{}, errors.Newf(errors.ErrInternal, "extension %q (%T) is not a renderer", id, instance).
				WithDetail("extension", id)
		}
		r.SetDataContainer(container)
		b.extensions = append(b.extensions, extension{id: id, renderer: r})
	}

	return b, nil
}

func (b *base) SetDataContainer(container ext.Data) {
	b.container = container
	for _, item := range b.extensions {
		item.renderer.SetDataContainer(container)
	}
}

func (b *base) DataContainer() ext.Data {
	return b.container
}

// SetDomDocument binds an existing document. Render replaces it with a fresh one.
func (b *base) SetDomDocument(doc *etree.Document, element *etree.Element) {
	b.dom = doc
	b.element = element
}

func (b *base) DomDocument() *etree.Document {
	return b.dom
}

// Element is the element produced by the last Render: rss for a feed, item for an entry
func (b *base) Element() *etree.Element {
	return b.element
}

func (b *base) SetType(kind string) {
	b.kind = kind
}

func (b *base) Type() string {
	return b.kind
}

func (b *base) SetRootElement(root *etree.Element) {
	b.root = root
}

// RootElement falls back to the rendered element when no root was bound
func (b *base) RootElement() *etree.Element {
	if b.root != nil {
		return b.root
	}
	return b.element
}

// IgnoreExceptions switches between raising the first missing-field error
// and collecting them all for inspection after Render.
func (b *base) IgnoreExceptions(ignore bool) {
	b.ignoreExceptions = ignore
}

func (b *base) Exceptions() []error {
	return b.exceptions
}

// Extension returns the extension renderer loaded for id, or nil
func (b *base) Extension(id string) ext.Renderer {
	for _, item := range b.extensions {
		if item.id == id {
			return item.renderer
		}
	}
	return nil
}

func (b *base) ExtensionIDs() []string {
	ids := make([]string, 0, len(b.extensions))
	for _, item := range b.extensions {
		ids = append(ids, item.id)
	}
	return ids
}

// fail raises err, or records it and returns nil when exceptions are ignored
func (b *base) fail(err *errors.FeedError) error {
	if !b.ignoreExceptions {
		return err
	}
	slog.Debug("Render error collected", "code", err.Code, "error", err.Message)
	b.exceptions = append(b.exceptions, err)
	return nil
}

// renderExtensions runs every extension renderer against at, in registration order.
// Extension errors are never collected.
func (b *base) renderExtensions(at *etree.Element) error {
	for _, item := range b.extensions {
		item.renderer.SetType(b.kind)
		item.renderer.SetRootElement(b.RootElement())
		item.renderer.SetDomDocument(b.dom, at)
		if err := item.renderer.Render(); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "extension %s", item.id)
		}
	}
	return nil
}

func missing(field, message string) *errors.FeedError {
	return errors.New(errors.ErrRequiredField, message).WithDetail("field", field)
}
