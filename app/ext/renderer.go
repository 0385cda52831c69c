package ext

import (
	"strings"

	"github.com/beevik/etree"
)

const TypeRSS = "rss"

const cdataEnd = "]]>"

// BaseRenderer carries the bindings every extension renderer needs.
// Embed it and implement Render.
type BaseRenderer struct {
	data Data
	dom  *etree.Document
	base *etree.Element
	root *etree.Element
	kind string
}

func (r *BaseRenderer) SetDataContainer(data Data) {
	r.data = data
}

func (r *BaseRenderer) DataContainer() Data {
	return r.data
}

func (r *BaseRenderer) SetDomDocument(doc *etree.Document, base *etree.Element) {
	r.dom = doc
	r.base = base
}

func (r *BaseRenderer) DomDocument() *etree.Document {
	return r.dom
}

// Base is the element new markup is appended under
func (r *BaseRenderer) Base() *etree.Element {
	return r.base
}

func (r *BaseRenderer) SetType(kind string) {
	r.kind = kind
}

func (r *BaseRenderer) Type() string {
	return r.kind
}

func (r *BaseRenderer) SetRootElement(root *etree.Element) {
	r.root = root
}

// RootElement returns the document's real root. When none was bound it is
// found by walking up from the insertion point.
func (r *BaseRenderer) RootElement() *etree.Element {
	if r.root != nil {
		return r.root
	}
	el := r.base
	for el != nil {
		parent := el.Parent()
		if parent == nil || parent.Tag == "" {
			return el
		}
		el = parent
	}
	if r.dom != nil {
		return r.dom.Root()
	}
	return nil
}

// Supports reports whether the bound feed kind is one the RSS extensions handle
func (r *BaseRenderer) Supports() bool {
	return r.kind == "" || r.kind == TypeRSS
}

// DeclareNamespace sets xmlns:prefix on the root element. Repeated calls are harmless.
func (r *BaseRenderer) DeclareNamespace(prefix, uri string) {
	root := r.RootElement()
	if root == nil {
		return
	}
	root.CreateAttr("xmlns:"+prefix, uri)
}

// String reads a string field from data
func String(data Data, key string) (string, bool) {
	if data == nil {
		return "", false
	}
	v, ok := data.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// CData appends s to el as CDATA. A "]]>" inside s is split across two
// consecutive sections so the first one does not close early.
func CData(el *etree.Element, s string) {
	parts := strings.Split(s, cdataEnd)
	for i, part := range parts {
		if i > 0 {
			part = ">" + part
		}
		if i < len(parts)-1 {
			part += "]]"
		}
		el.CreateCData(part)
	}
}
