package writer

import (
	"sort"
	"strings"
	"sync"

	"github.com/lysyi3m/rss-turbo/app/errors"
	"github.com/lysyi3m/rss-turbo/app/ext/fulltext"
	"github.com/lysyi3m/rss-turbo/app/ext/turbo"
)

// Resolver turns a role-qualified extension id (e.g. "Turbo/Renderer/Feed")
// into an extension instance
type Resolver interface {
	Has(id string) bool
	Get(id string) (interface{}, error)
}

// Factory builds a fresh extension instance
type Factory func() interface{}

var _ Resolver = (*StandaloneResolver)(nil)

// StandaloneResolver is a closed table of built-in extensions. Third-party
// extensions can be added with Add.
type StandaloneResolver struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewStandaloneResolver() *StandaloneResolver {
	return &StandaloneResolver{
		factories: map[string]Factory{
			FeedID("Turbo"):             func() interface{} { return turbo.NewFeed() },
			FeedRendererID("Turbo"):     func() interface{} { return turbo.NewFeedRenderer() },
			EntryRendererID("Turbo"):    func() interface{} { return turbo.NewEntryRenderer() },
			EntryRendererID("FullText"): func() interface{} { return fulltext.NewEntryRenderer() },
		},
	}
}

func (r *StandaloneResolver) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}

func (r *StandaloneResolver) Get(id string) (interface{}, error) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Newf(errors.ErrResolution, "extension %q is not known to the resolver", id).
			WithDetail("extension", id)
	}
	return factory(), nil
}

// Add registers a factory under id. The id must end in a role suffix
// ("/Feed" or "/Entry", which also covers the renderer roles).
func (r *StandaloneResolver) Add(id string, factory Factory) error {
	if factory == nil {
		return errors.Validation("factory", "must not be nil")
	}
	if !strings.HasSuffix(id, "/"+roleFeed) && !strings.HasSuffix(id, "/"+roleEntry) {
		return errors.Validation("id", `must end in "/Feed" or "/Entry"`)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = factory
	return nil
}

func (r *StandaloneResolver) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, id)
}

// IDs lists the known extension ids in sorted order
func (r *StandaloneResolver) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
