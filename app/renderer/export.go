package renderer

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext"
	"github.com/lysyi3m/rss-turbo/app/writer"
)

const indent = 2

type Options struct {
	// IgnoreExceptions collects missing-field errors instead of failing the export
	IgnoreExceptions bool
}

// Export renders feed as kind and serializes the result in the feed's encoding.
// Only "rss" is supported. Collected errors are returned alongside the document
// when opts.IgnoreExceptions is set.
func Export(feed *writer.Feed, kind string, opts Options) ([]byte, []error, error) {
	kind = strings.ToLower(kind)
	if kind == "" {
		kind = ext.TypeRSS
	}
	if kind != ext.TypeRSS {
		return nil, nil, errors.Validation("type", "writer type must be rss, got "+kind)
	}

	feed.SetType(kind)

	r, err := NewFeed(feed)
	if err != nil {
		return nil, nil, err
	}
	r.SetType(kind)
	r.IgnoreExceptions(opts.IgnoreExceptions)

	if err := r.Render(); err != nil {
		return nil, nil, err
	}

	out, err := r.SaveXML()
	if err != nil {
		return nil, nil, err
	}
	return out, r.Exceptions(), nil
}

// SaveXML serializes the rendered document with two-space indentation and
// transcodes it from UTF-8 into the feed encoding.
func (r *Feed) SaveXML() ([]byte, error) {
	if r.dom == nil {
		return nil, errors.New(errors.ErrInternal, "feed has not been rendered")
	}

	enc, err := lookupEncoding(r.feed.Encoding())
	if err != nil {
		return nil, err
	}

	r.dom.Indent(indent)
	if enc != nil {
		moveUnencodableOutOfCData(&r.dom.Element, enc.NewEncoder())
	}

	out, err := r.dom.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to serialize document")
	}

	return transcode(out, enc, r.feed.Encoding())
}

// lookupEncoding returns nil for UTF-8, which needs no transcoding
func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEncoding, "unsupported encoding %q", name).
			WithDetail("encoding", name)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// moveUnencodableOutOfCData splits CDATA sections around runes the target
// encoding cannot represent and stores those runes as plain text, where the
// transcoder can write them as character references.
func moveUnencodableOutOfCData(el *etree.Element, encoder *encoding.Encoder) {
	for i := 0; i < len(el.Child); i++ {
		switch token := el.Child[i].(type) {
		case *etree.Element:
			moveUnencodableOutOfCData(token, encoder)
		case *etree.CharData:
			if !token.IsCData() {
				continue
			}
			parts := splitByEncodability(token.Data, encoder)
			if len(parts) == 0 || len(parts) == 1 && parts[0].encodable {
				continue
			}
			el.RemoveChildAt(i)
			for j, part := range parts {
				if part.encodable {
					el.InsertChildAt(i+j, etree.NewCData(part.text))
				} else {
					el.InsertChildAt(i+j, etree.NewText(part.text))
				}
			}
			i += len(parts) - 1
		}
	}
}

type run struct {
	text      string
	encodable bool
}

func splitByEncodability(s string, encoder *encoding.Encoder) []run {
	var runs []run
	for _, r := range s {
		_, err := encoder.String(string(r))
		ok := err == nil
		if n := len(runs); n > 0 && runs[n-1].encodable == ok {
			runs[n-1].text += string(r)
			continue
		}
		runs = append(runs, run{text: string(r), encodable: ok})
	}
	return runs
}

func transcode(data []byte, enc encoding.Encoding, name string) ([]byte, error) {
	if enc == nil {
		return data, nil
	}

	out, err := encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEncoding, "failed to encode document as %s", name)
	}
	return out, nil
}
