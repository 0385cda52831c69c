package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext/turbo"
)

func newTestFeed(t *testing.T) *Feed {
	t.Helper()
	feed, err := NewFeed(NewRegistry())
	require.NoError(t, err)
	return feed
}

func TestNewFeed_RegistersCore(t *testing.T) {
	reg := NewRegistry()

	feed, err := NewFeed(reg)

	require.NoError(t, err)
	assert.True(t, reg.IsRegistered(CoreExtension))
	assert.Equal(t, []string{"Turbo/Feed"}, feed.ExtensionIDs())
	assert.Same(t, reg, feed.Registry())
}

func TestFeed_SettersRoundTrip(t *testing.T) {
	feed := newTestFeed(t)

	require.NoError(t, feed.SetTitle("Daily news"))
	require.NoError(t, feed.SetDescription("Everything that happened today"))
	require.NoError(t, feed.SetLink("https://example.com/"))
	require.NoError(t, feed.SetLanguage("ru"))
	require.NoError(t, feed.SetBaseURL("https://example.com"))
	require.NoError(t, feed.SetGenerator("rss-turbo"))
	require.NoError(t, feed.SetID("urn:uuid:60a76c80-d399-11d9-b93C-0003939e0af6"))

	title, ok := feed.Title()
	assert.True(t, ok)
	assert.Equal(t, "Daily news", title)

	description, _ := feed.Description()
	assert.Equal(t, "Everything that happened today", description)
	link, _ := feed.Link()
	assert.Equal(t, "https://example.com/", link)
	language, _ := feed.Language()
	assert.Equal(t, "ru", language)
	baseURL, _ := feed.BaseURL()
	assert.Equal(t, "https://example.com", baseURL)
	generator, _ := feed.Generator()
	assert.Equal(t, "rss-turbo", generator)
	id, _ := feed.ID()
	assert.Equal(t, "urn:uuid:60a76c80-d399-11d9-b93C-0003939e0af6", id)
}

func TestFeed_InvalidValuesKeepPriorState(t *testing.T) {
	feed := newTestFeed(t)
	require.NoError(t, feed.SetTitle("Original"))
	require.NoError(t, feed.SetLink("https://example.com/"))

	tests := []struct {
		name string
		set  func() error
	}{
		{"empty title", func() error { return feed.SetTitle("") }},
		{"empty description", func() error { return feed.SetDescription("") }},
		{"empty language", func() error { return feed.SetLanguage("") }},
		{"empty encoding", func() error { return feed.SetEncoding("") }},
		{"relative link", func() error { return feed.SetLink("/news") }},
		{"link with spaces", func() error { return feed.SetLink("https://exa mple.com") }},
		{"invalid base url", func() error { return feed.SetBaseURL("not a url") }},
		{"invalid id", func() error { return feed.SetID("id-without-scheme") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
		})
	}

	title, _ := feed.Title()
	assert.Equal(t, "Original", title)
	link, _ := feed.Link()
	assert.Equal(t, "https://example.com/", link)
	assert.False(t, feed.Has("description"))
	assert.Equal(t, DefaultEncoding, feed.Encoding())
}

func TestFeed_AbsentIsDistinctFromSet(t *testing.T) {
	feed := newTestFeed(t)

	title, ok := feed.Title()
	assert.False(t, ok)
	assert.Empty(t, title)
	assert.False(t, feed.Has("title"))

	feed.Set("title", "")
	title, ok = feed.Title()
	assert.True(t, ok)
	assert.Empty(t, title)
}

func TestFeed_EncodingDefault(t *testing.T) {
	feed := newTestFeed(t)

	assert.Equal(t, "UTF-8", feed.Encoding())
	assert.False(t, feed.Has("encoding"))

	require.NoError(t, feed.SetEncoding("windows-1251"))
	assert.Equal(t, "windows-1251", feed.Encoding())
}

func TestFeed_ResetAndRemove(t *testing.T) {
	feed := newTestFeed(t)
	require.NoError(t, feed.SetTitle("Title"))
	require.NoError(t, feed.SetDescription("Description"))
	require.NoError(t, feed.AddAnalytics(turbo.Analytics{Type: "Yandex", ID: "123"}))
	entry, err := feed.CreateEntry()
	require.NoError(t, err)
	require.NoError(t, feed.AddEntry(entry))

	feed.Remove("title")
	assert.False(t, feed.Has("title"))
	assert.True(t, feed.Has("description"))

	feed.Reset()
	assert.False(t, feed.Has("description"))
	analytics, err := feed.Analytics()
	require.NoError(t, err)
	assert.Empty(t, analytics)

	// the container survives a reset
	assert.Equal(t, 1, feed.Len())
	require.NoError(t, feed.SetTitle("Again"))
}

func TestFeed_AnalyticsThroughDispatch(t *testing.T) {
	feed := newTestFeed(t)

	require.NoError(t, feed.AddAnalytics(turbo.Analytics{Type: "Yandex", ID: "88990"}))
	_, err := feed.Call("addAnalytics", map[string]string{"type": "Google", "id": "UA-1", "params": "{}"})
	require.NoError(t, err)

	analytics, err := feed.Analytics()
	require.NoError(t, err)
	assert.Equal(t, []turbo.Analytics{
		{Type: "Yandex", ID: "88990"},
		{Type: "Google", ID: "UA-1", Params: "{}"},
	}, analytics)
}

func TestFeed_AnalyticsValidation(t *testing.T) {
	feed := newTestFeed(t)

	err := feed.AddAnalytics(turbo.Analytics{ID: "1"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))

	err = feed.AddAnalytics(turbo.Analytics{Type: "Yandex"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))

	_, err = feed.Call("addAnalytics", 42)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))

	analytics, err := feed.Analytics()
	require.NoError(t, err)
	assert.Empty(t, analytics)
}

func TestFeed_NetworkThroughDispatch(t *testing.T) {
	feed := newTestFeed(t)

	require.NoError(t, feed.AddNetwork(turbo.Network{Type: "Yandex", TurboAdID: "first_ad_place"}))
	require.NoError(t, feed.AddNetwork(turbo.Network{Type: "AdFox", TurboAdID: "second", Content: "<div>ad</div>"}))

	network, err := feed.Network()
	require.NoError(t, err)
	require.Len(t, network, 2)
	assert.Equal(t, "first_ad_place", network[0].TurboAdID)
	assert.Equal(t, "<div>ad</div>", network[1].Content)
}

func TestFeed_NetworkValidation(t *testing.T) {
	feed := newTestFeed(t)

	tests := []struct {
		name    string
		network turbo.Network
	}{
		{"missing type", turbo.Network{TurboAdID: "x"}},
		{"unknown type", turbo.Network{Type: "Google", TurboAdID: "x"}},
		{"missing ad id", turbo.Network{Type: "AdFox"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := feed.AddNetwork(tt.network)
			assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
		})
	}

	network, err := feed.Network()
	require.NoError(t, err)
	assert.Empty(t, network)
}

func TestFeed_TurboOpsWithoutTurboAugmenter(t *testing.T) {
	resolver := NewStandaloneResolver()
	resolver.Remove("Turbo/Feed")
	reg := NewRegistry()
	reg.SetResolver(resolver)

	feed, err := NewFeed(reg)
	require.NoError(t, err)

	err = feed.AddAnalytics(turbo.Analytics{Type: "Yandex", ID: "1"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedOperation))
}

func TestFeed_Entries(t *testing.T) {
	feed := newTestFeed(t)

	a, err := feed.CreateEntry()
	require.NoError(t, err)
	b, err := feed.CreateEntry()
	require.NoError(t, err)
	assert.Equal(t, 0, feed.Len())

	require.NoError(t, feed.AddEntry(a))
	require.NoError(t, feed.AddEntry(b))

	entries := feed.Entries()
	require.Len(t, entries, 2)
	assert.Same(t, a, entries[0])
	assert.Same(t, b, entries[1])
	assert.Same(t, feed, a.Feed())

	err = feed.AddEntry(a)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))

	other := newTestFeed(t)
	err = other.AddEntry(b)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))

	require.NoError(t, feed.RemoveEntry(0))
	assert.Nil(t, a.Feed())
	assert.Equal(t, []*Entry{b}, feed.Entries())
	require.NoError(t, other.AddEntry(a))

	assert.True(t, errors.IsErrorCode(feed.RemoveEntry(5), errors.ErrValidation))
	assert.True(t, errors.IsErrorCode(feed.AddEntry(nil), errors.ErrValidation))
}

func TestFeed_CreateEntryInheritsEncoding(t *testing.T) {
	feed := newTestFeed(t)
	require.NoError(t, feed.SetEncoding("KOI8-R"))

	entry, err := feed.CreateEntry()
	require.NoError(t, err)

	assert.Equal(t, "KOI8-R", entry.Encoding())
}
