package turbo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext"
)

// memData is a minimal ext.Data backed by a map. Call routes to the attached augmenter.
type memData struct {
	fields    map[string]interface{}
	kind      string
	augmenter ext.Augmenter
}

func newMemData() *memData {
	return &memData{fields: make(map[string]interface{})}
}

func (d *memData) Get(key string) (interface{}, bool) {
	v, ok := d.fields[key]
	return v, ok
}

func (d *memData) Set(key string, value interface{}) { d.fields[key] = value }

func (d *memData) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

func (d *memData) Remove(key string) { delete(d.fields, key) }
func (d *memData) Encoding() string  { return "UTF-8" }
func (d *memData) Type() string      { return d.kind }

func (d *memData) Call(op string, args ...interface{}) (interface{}, error) {
	if d.augmenter == nil {
		return nil, errors.NotImplemented(op)
	}
	return d.augmenter.Call(op, args)
}

func attachedFeed(t *testing.T) (*Feed, *memData) {
	t.Helper()
	data := newMemData()
	f := NewFeed()
	f.Attach(data)
	data.augmenter = f
	return f, data
}

func TestFeed_AddAnalytics(t *testing.T) {
	f, data := attachedFeed(t)

	require.NoError(t, f.AddAnalytics(Analytics{Type: "Yandex", ID: "123"}))
	require.NoError(t, f.AddAnalytics(Analytics{Type: "LiveInternet", ID: "site", Params: "{\"a\":1}"}))

	assert.Equal(t, []Analytics{
		{Type: "Yandex", ID: "123"},
		{Type: "LiveInternet", ID: "site", Params: "{\"a\":1}"},
	}, f.Analytics())
	assert.True(t, data.Has("analytics"))
}

func TestFeed_AnalyticsRemovedWithContainerField(t *testing.T) {
	f, data := attachedFeed(t)
	require.NoError(t, f.AddAnalytics(Analytics{Type: "Yandex", ID: "123"}))

	data.Remove("analytics")

	assert.Empty(t, f.Analytics())
}

func TestFeed_AddNetworkValidation(t *testing.T) {
	f, _ := attachedFeed(t)

	err := f.AddNetwork(Network{Type: "Google", TurboAdID: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
	assert.Contains(t, err.Error(), "AdFox")

	require.NoError(t, f.AddNetwork(Network{Type: NetworkAdFox, TurboAdID: "place"}))
	assert.Len(t, f.Network(), 1)
}

func TestFeed_NotAttached(t *testing.T) {
	f := NewFeed()

	assert.True(t, errors.IsErrorCode(f.AddAnalytics(Analytics{Type: "Yandex", ID: "1"}), errors.ErrInternal))
	assert.True(t, errors.IsErrorCode(f.AddNetwork(Network{Type: NetworkYandex, TurboAdID: "1"}), errors.ErrInternal))
	assert.Nil(t, f.Analytics())
	assert.Nil(t, f.Network())
}

func TestFeed_Call(t *testing.T) {
	f, _ := attachedFeed(t)

	_, err := f.Call("addAnalytics", []interface{}{&Analytics{Type: "Yandex", ID: "1"}})
	require.NoError(t, err)
	_, err = f.Call("addNetwork", []interface{}{map[string]string{"type": "Yandex", "turbo-ad-id": "ad"}})
	require.NoError(t, err)

	v, err := f.Call("getAnalytics", nil)
	require.NoError(t, err)
	assert.Len(t, v, 1)

	v, err = f.Call("getNetwork", nil)
	require.NoError(t, err)
	assert.Equal(t, []Network{{Type: "Yandex", TurboAdID: "ad"}}, v)

	_, err = f.Call("addAnalytics", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))

	_, err = f.Call("setTitle", []interface{}{"x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotImplemented))
}

func TestFeed_Encoding(t *testing.T) {
	f := NewFeed()
	assert.Equal(t, "UTF-8", f.Encoding())

	f.SetEncoding("windows-1251")
	assert.Equal(t, "windows-1251", f.Encoding())
}
