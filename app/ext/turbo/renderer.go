package turbo

import (
	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext"
)

var (
	_ ext.Renderer = (*FeedRenderer)(nil)
	_ ext.Renderer = (*EntryRenderer)(nil)
)

// FeedRenderer appends turbo:analytics and turbo:network to the channel
type FeedRenderer struct {
	ext.BaseRenderer
}

func NewFeedRenderer() *FeedRenderer {
	return &FeedRenderer{}
}

func (r *FeedRenderer) Render() error {
	if !r.Supports() {
		return nil
	}
	if r.DataContainer() == nil {
		return errors.Newf(errors.ErrInternal, "%s feed renderer has no data container", Prefix)
	}

	analytics, err := r.setAnalytics()
	if err != nil {
		return err
	}
	network, err := r.setNetwork()
	if err != nil {
		return err
	}

	if analytics || network {
		r.DeclareNamespace(Prefix, Namespace)
	}
	return nil
}

func (r *FeedRenderer) setAnalytics() (bool, error) {
	v, err := r.DataContainer().Call("getAnalytics")
	if err != nil {
		return false, err
	}
	records, ok := v.([]Analytics)
	if !ok && v != nil {
		return false, errors.Newf(errors.ErrInternal, "getAnalytics returned %T", v)
	}
	if len(records) == 0 {
		return false, nil
	}

	for _, a := range records {
		el := r.Base().CreateElement(Prefix + ":analytics")
		el.CreateAttr("type", a.Type)
		el.CreateAttr("id", a.ID)
		if a.Params != "" {
			el.CreateAttr("params", a.Params)
		}
	}
	return true, nil
}

func (r *FeedRenderer) setNetwork() (bool, error) {
	v, err := r.DataContainer().Call("getNetwork")
	if err != nil {
		return false, err
	}
	records, ok := v.([]Network)
	if !ok && v != nil {
		return false, errors.Newf(errors.ErrInternal, "getNetwork returned %T", v)
	}
	if len(records) == 0 {
		return false, nil
	}

	for _, n := range records {
		el := r.Base().CreateElement(Prefix + ":network")
		el.CreateAttr("type", n.Type)
		el.CreateAttr("turbo-ad-id", n.TurboAdID)
		if n.Content != "" {
			ext.CData(el, n.Content)
		}
	}
	return true, nil
}

// EntryRenderer appends turbo:content and turbo:source to an item
type EntryRenderer struct {
	ext.BaseRenderer
}

func NewEntryRenderer() *EntryRenderer {
	return &EntryRenderer{}
}

func (r *EntryRenderer) Render() error {
	if !r.Supports() {
		return nil
	}
	if r.DataContainer() == nil {
		return errors.Newf(errors.ErrInternal, "%s entry renderer has no data container", Prefix)
	}

	content := r.setContent()
	source := r.setSource()

	if content || source {
		r.DeclareNamespace(Prefix, Namespace)
	}
	return nil
}

func (r *EntryRenderer) setContent() bool {
	content, ok := ext.String(r.DataContainer(), "content")
	if !ok {
		return false
	}
	ext.CData(r.Base().CreateElement(Prefix+":content"), content)
	return true
}

func (r *EntryRenderer) setSource() bool {
	source, ok := ext.String(r.DataContainer(), "source")
	if !ok {
		return false
	}
	r.Base().CreateElement(Prefix + ":source").SetText(source)
	return true
}
