package ext

import (
	"github.com/beevik/etree"
)

// Data is the view of a feed or entry container that extensions work against.
// Both writer.Feed and writer.Entry implement it.
type Data interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Has(key string) bool
	Remove(key string)
	Encoding() string
	Type() string
	// Call forwards op to the first attached augmenter that implements it
	Call(op string, args ...interface{}) (interface{}, error)
}

// Augmenter adds capability methods to a container. Call must return an
// errors.ErrNotImplemented error for operations it does not handle so that
// dispatch can move on to the next augmenter.
type Augmenter interface {
	SetEncoding(encoding string)
	Attach(data Data)
	Call(op string, args []interface{}) (interface{}, error)
}

// Renderer contributes markup to a document under construction
type Renderer interface {
	SetDataContainer(data Data)
	DataContainer() Data
	SetDomDocument(doc *etree.Document, base *etree.Element)
	SetType(kind string)
	Type() string
	SetRootElement(root *etree.Element)
	RootElement() *etree.Element
	Render() error
}
