package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/rss-turbo/app/ext/turbo"
	"github.com/lysyi3m/rss-turbo/app/writer"
)

func newEntry(t *testing.T) *writer.Entry {
	t.Helper()
	entry, err := writer.NewEntry(writer.NewRegistry())
	require.NoError(t, err)
	return entry
}

func renderEntry(t *testing.T, entry *writer.Entry) *Entry {
	t.Helper()
	r, err := NewEntry(entry)
	require.NoError(t, err)
	require.NoError(t, r.Render())
	return r
}

func TestEntry_EmptyItem(t *testing.T) {
	r := renderEntry(t, newEntry(t))

	item := r.Element()
	require.NotNil(t, item)
	assert.Equal(t, "item", item.Tag)
	assert.Empty(t, item.ChildElements())
	require.Len(t, item.Attr, 1)
	assert.Equal(t, "true", item.SelectAttrValue("turbo", ""))
	assert.Empty(t, r.Exceptions())
}

func TestEntry_Fields(t *testing.T) {
	entry := newEntry(t)
	require.NoError(t, entry.SetID("https://example.com/news/1"))
	require.NoError(t, entry.SetTitle("Breaking"))
	require.NoError(t, entry.SetLink("https://example.com/news/1"))
	entry.SetDateModified(time.Date(2023, 7, 3, 10, 0, 0, 0, time.FixedZone("MSK", 3*60*60)))
	require.NoError(t, entry.AddAuthors([]writer.Author{
		{Name: "Jane", Email: "jane@example.com"},
		{Name: "John"},
	}))
	require.NoError(t, entry.AddCategories([]writer.Category{
		{Term: "politics"},
		{Term: "world", Scheme: "https://example.com/tags"},
	}))

	item := renderEntry(t, entry).Element()

	assert.Equal(t, []string{"guid", "title", "pubDate", "link", "author", "author", "category", "category"}, childTags(item))
	assert.Equal(t, "true", item.SelectElement("guid").SelectAttrValue("isPermaLink", ""))
	assert.Equal(t, "Mon, 03 Jul 2023 10:00:00 +0300", item.SelectElement("pubDate").Text())
	assert.Equal(t, "https://example.com/news/1", item.SelectElement("link").Text())
	assert.Nil(t, item.SelectElement("link").SelectAttr("isPermaLink"))

	authors := item.SelectElements("author")
	assert.Equal(t, "jane@example.com (Jane)", authors[0].Text())
	assert.Equal(t, "John", authors[1].Text())

	categories := item.SelectElements("category")
	assert.Equal(t, "politics", categories[0].Text())
	assert.Nil(t, categories[0].SelectAttr("domain"))
	assert.Equal(t, "world", categories[1].Text())
	assert.Equal(t, "https://example.com/tags", categories[1].SelectAttrValue("domain", ""))
}

func TestEntry_CoreFieldsWithoutIDAndTitle(t *testing.T) {
	entry := newEntry(t)
	require.NoError(t, entry.SetLink("https://example.com/news/2"))
	entry.SetDateCreated(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC))
	require.NoError(t, entry.AddAuthor(writer.Author{Name: "Jane"}))
	require.NoError(t, entry.AddCategory(writer.Category{Term: "politics"}))

	item := renderEntry(t, entry).Element()

	assert.Equal(t, []string{"pubDate", "link", "author", "category"}, childTags(item))
}

func TestEntry_GUIDPermalink(t *testing.T) {
	entry := newEntry(t)
	require.NoError(t, entry.SetID("urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a"))

	guid := renderEntry(t, entry).Element().SelectElement("guid")

	require.NotNil(t, guid)
	assert.Equal(t, "false", guid.SelectAttrValue("isPermaLink", ""))

	require.NoError(t, entry.SetID("http://example.com/news/1"))
	guid = renderEntry(t, entry).Element().SelectElement("guid")
	assert.Equal(t, "true", guid.SelectAttrValue("isPermaLink", ""))
}

func TestEntry_DateModifiedDefaultsToCreated(t *testing.T) {
	entry := newEntry(t)
	entry.SetDateCreatedUnix(1700000000)

	renderEntry(t, entry)

	created, _ := entry.DateCreated()
	modified, ok := entry.DateModified()
	require.True(t, ok)
	assert.True(t, created.Equal(modified))
}

func TestEntry_DateModifiedKeptWhenSet(t *testing.T) {
	entry := newEntry(t)
	entry.SetDateCreatedUnix(1600000000)
	entry.SetDateModifiedUnix(1700000000)

	item := renderEntry(t, entry).Element()

	modified, _ := entry.DateModified()
	assert.Equal(t, int64(1700000000), modified.Unix())
	assert.Len(t, item.SelectElements("pubDate"), 1)
}

func TestEntry_TurboEnrichment(t *testing.T) {
	entry := newEntry(t)
	require.NoError(t, entry.SetContent("<header><h1>Title</h1></header><p>Text</p>"))
	require.NoError(t, entry.SetSource("https://source.example.com/a"))

	r := renderEntry(t, entry)
	item := r.Element()

	content := item.SelectElement("turbo:content")
	require.NotNil(t, content)
	assert.Equal(t, "<header><h1>Title</h1></header><p>Text</p>", content.Text())
	assert.Equal(t, "https://source.example.com/a", item.SelectElement("turbo:source").Text())

	// rendered on its own, the item is its own root
	assert.Same(t, item, r.RootElement())
	assert.Equal(t, turbo.Namespace, item.SelectAttrValue("xmlns:turbo", ""))
}

func TestEntry_OtherKindSkipsExtensions(t *testing.T) {
	entry := newEntry(t)
	require.NoError(t, entry.SetContent("<p>Text</p>"))

	r, err := NewEntry(entry)
	require.NoError(t, err)
	r.SetType("atom")
	require.NoError(t, r.Render())

	assert.Nil(t, r.Element().SelectElement("turbo:content"))
	assert.Equal(t, "atom", r.Type())
}
