package writer

import (
	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext"
)

type attached struct {
	id        string
	augmenter ext.Augmenter
}

// augmenters holds the extensions attached to one container, in registry order
type augmenters []attached

// loadAugmenters resolves every id and attaches the instance to data.
// An id the registry advertises but the resolver cannot build is an internal error.
func loadAugmenters(reg *Registry, ids []string, data ext.Data) (augmenters, error) {
	resolver := reg.Resolver()
	loaded := make(augmenters, 0, len(ids))

	for _, id := range ids {
		if !resolver.Has(id) {
			return nil, errors.Newf(errors.ErrInternal, "unable to load extension %q; could not resolve it", id).
				WithDetail("extension", id)
		}
		instance, err := resolver.Get(id)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "unable to load extension %q", id)
		}
		augmenter, ok := instance.(ext.Augmenter)
		if !ok {
			return nil, errors.Newf(errors.ErrInternal, "extension %q (%T) is not a data augmenter", id, instance).
				WithDetail("extension", id)
		}

		augmenter.SetEncoding(data.Encoding())
		augmenter.Attach(data)
		loaded = append(loaded, attached{id: id, augmenter: augmenter})
	}

	return loaded, nil
}

// call runs op on the first augmenter that implements it. A not-implemented
// error moves on to the next one; any other error stops the search.
func (a augmenters) call(op string, args []interface{}) (interface{}, error) {
	for _, item := range a {
		result, err := item.augmenter.Call(op, args)
		if err == nil {
			return result, nil
		}
		if errors.IsErrorCode(err, errors.ErrNotImplemented) {
			continue
		}
		return nil, err
	}

	return nil, errors.Newf(errors.ErrUnresolvedOperation,
		"method %s does not exist and could not be located on a registered extension", op).
		WithDetail("operation", op)
}

func (a augmenters) get(id string) ext.Augmenter {
	for _, item := range a {
		if item.id == id {
			return item.augmenter
		}
	}
	return nil
}

func (a augmenters) ids() []string {
	ids := make([]string, 0, len(a))
	for _, item := range a {
		ids = append(ids, item.id)
	}
	return ids
}

func (a augmenters) setEncoding(encoding string) {
	for _, item := range a {
		item.augmenter.SetEncoding(encoding)
	}
}
