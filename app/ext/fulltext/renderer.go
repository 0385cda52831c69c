package fulltext

import (
	"github.com/lysyi3m/rss-turbo/app/ext"
)

const (
	Prefix    = "yandex"
	Namespace = "http://news.yandex.ru"
)

var _ ext.Renderer = (*EntryRenderer)(nil)

// EntryRenderer emits the entry content as yandex:full-text for Yandex News
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
	if r.setContent() {
		r.DeclareNamespace(Prefix, Namespace)
	}
	return nil
}

func (r *EntryRenderer) setContent() bool {
	content, ok := ext.String(r.DataContainer(), "content")
	if !ok {
		return false
	}
	ext.CData(r.Base().CreateElement(Prefix+":full-text"), content)
	return true
}
