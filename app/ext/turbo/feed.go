package turbo

import (
	"fmt"
	"slices"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext"
)

const (
	keyAnalytics = "analytics"
	keyNetwork   = "network"
)

var _ ext.Augmenter = (*Feed)(nil)

// Feed augments a feed container with analytics and advertising network records.
// Records are stored on the container itself so Reset and Remove apply to them.
type Feed struct {
	data     ext.Data
	encoding string
}

func NewFeed() *Feed {
	return &Feed{encoding: "UTF-8"}
}

func (f *Feed) SetEncoding(encoding string) {
	f.encoding = encoding
}

func (f *Feed) Encoding() string {
	return f.encoding
}

func (f *Feed) Attach(data ext.Data) {
	f.data = data
}

func (f *Feed) Call(op string, args []interface{}) (interface{}, error) {
	switch op {
	case "addAnalytics":
		a, err := analyticsArg(op, args)
		if err != nil {
			return nil, err
		}
		return nil, f.AddAnalytics(a)
	case "getAnalytics":
		return f.Analytics(), nil
	case "addNetwork":
		n, err := networkArg(op, args)
		if err != nil {
			return nil, err
		}
		return nil, f.AddNetwork(n)
	case "getNetwork":
		return f.Network(), nil
	default:
		return nil, errors.NotImplemented(op)
	}
}

func (f *Feed) AddAnalytics(a Analytics) error {
	if f.data == nil {
		return errors.New(errors.ErrInternal, "turbo feed extension is not attached to a container")
	}
	if a.Type == "" {
		return errors.Validation("type", "must be a non-empty string")
	}
	if a.ID == "" {
		return errors.Validation("id", "must be a non-empty string")
	}

	f.data.Set(keyAnalytics, append(f.Analytics(), a))
	return nil
}

// Analytics returns a copy of the stored records, nil when none were added
func (f *Feed) Analytics() []Analytics {
	if f.data == nil {
		return nil
	}
	v, ok := f.data.Get(keyAnalytics)
	if !ok {
		return nil
	}
	records, _ := v.([]Analytics)
	return slices.Clone(records)
}

func (f *Feed) AddNetwork(n Network) error {
	if f.data == nil {
		return errors.New(errors.ErrInternal, "turbo feed extension is not attached to a container")
	}
	if n.Type == "" {
		return errors.Validation("type", "must be a non-empty string")
	}
	if n.Type != NetworkAdFox && n.Type != NetworkYandex {
		return errors.Validation("type", fmt.Sprintf("must be %s or %s, got %q", NetworkAdFox, NetworkYandex, n.Type))
	}
	if n.TurboAdID == "" {
		return errors.Validation("turbo-ad-id", "must be a non-empty string")
	}

	f.data.Set(keyNetwork, append(f.Network(), n))
	return nil
}

func (f *Feed) Network() []Network {
	if f.data == nil {
		return nil
	}
	v, ok := f.data.Get(keyNetwork)
	if !ok {
		return nil
	}
	records, _ := v.([]Network)
	return slices.Clone(records)
}

// analyticsArg accepts an Analytics value or a map with type/id/params keys
func analyticsArg(op string, args []interface{}) (Analytics, error) {
	if len(args) != 1 {
		return Analytics{}, errors.Validation(op, "expects exactly one argument")
	}
	switch v := args[0].(type) {
	case Analytics:
		return v, nil
	case *Analytics:
		if v != nil {
			return *v, nil
		}
	case map[string]string:
		return Analytics{Type: v["type"], ID: v["id"], Params: v["params"]}, nil
	}
	return Analytics{}, errors.Validation(op, fmt.Sprintf("unsupported argument type %T", args[0]))
}

// networkArg accepts a Network value or a map with type/turbo-ad-id/content keys
func networkArg(op string, args []interface{}) (Network, error) {
	if len(args) != 1 {
		return Network{}, errors.Validation(op, "expects exactly one argument")
	}
	switch v := args[0].(type) {
	case Network:
		return v, nil
	case *Network:
		if v != nil {
			return *v, nil
		}
	case map[string]string:
		return Network{Type: v["type"], TurboAdID: v["turbo-ad-id"], Content: v["content"]}, nil
	}
	return Network{}, errors.Validation(op, fmt.Sprintf("unsupported argument type %T", args[0]))
}
