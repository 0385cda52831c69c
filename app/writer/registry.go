package writer

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/lysyi3m/rss-turbo/app/errors"
)

// CoreExtension is registered before any container is built
const CoreExtension = "Turbo"

const (
	roleFeed     = "Feed"
	roleEntry    = "Entry"
	roleRenderer = "Renderer"
)

func FeedID(name string) string          { return name + "/" + roleFeed }
func EntryID(name string) string         { return name + "/" + roleEntry }
func FeedRendererID(name string) string  { return name + "/" + roleRenderer + "/" + roleFeed }
func EntryRendererID(name string) string { return name + "/" + roleRenderer + "/" + roleEntry }

// Extensions lists registered extension ids per role, in registration order
type Extensions struct {
	Feed          []string
	Entry         []string
	FeedRenderer  []string
	EntryRenderer []string
}

// Registry tracks which extensions are active and which resolver produces them.
// It is safe for concurrent use but meant to be read-mostly after startup.
type Registry struct {
	mu         sync.RWMutex
	resolver   Resolver
	extensions Extensions
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) SetResolver(resolver Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolver = resolver
}

// Resolver returns the active resolver, creating the standalone one on first use
func (r *Registry) Resolver() Resolver {
	r.mu.RLock()
	resolver := r.resolver
	r.mu.RUnlock()
	if resolver != nil {
		return resolver
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolverLocked()
}

func (r *Registry) resolverLocked() Resolver {
	if r.resolver == nil {
		r.resolver = NewStandaloneResolver()
	}
	return r.resolver
}

// Register activates every role of the named extension the resolver knows.
// Registering an already registered name is a no-op.
func (r *Registry) Register(name string) error {
	if name == "" {
		return errors.New(errors.ErrResolution, "extension name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	resolver := r.resolverLocked()

	feed := resolver.Has(FeedID(name))
	entry := resolver.Has(EntryID(name))
	feedRenderer := resolver.Has(FeedRendererID(name))
	entryRenderer := resolver.Has(EntryRendererID(name))

	if !feed && !entry && !feedRenderer && !entryRenderer {
		return errors.Newf(errors.ErrResolution,
			"could not load extension %q using the resolver; check the extension exists", name).
			WithDetail("extension", name)
	}

	if r.isRegisteredLocked(name) {
		return nil
	}

	if feed {
		r.extensions.Feed = append(r.extensions.Feed, FeedID(name))
	}
	if entry {
		r.extensions.Entry = append(r.extensions.Entry, EntryID(name))
	}
	if feedRenderer {
		r.extensions.FeedRenderer = append(r.extensions.FeedRenderer, FeedRendererID(name))
	}
	if entryRenderer {
		r.extensions.EntryRenderer = append(r.extensions.EntryRenderer, EntryRendererID(name))
	}

	slog.Debug("Extension registered", "extension", name,
		"feed", feed, "entry", entry, "feed_renderer", feedRenderer, "entry_renderer", entryRenderer)
	return nil
}

func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRegisteredLocked(name)
}

func (r *Registry) isRegisteredLocked(name string) bool {
	return slices.Contains(r.extensions.Feed, FeedID(name)) ||
		slices.Contains(r.extensions.Entry, EntryID(name)) ||
		slices.Contains(r.extensions.FeedRenderer, FeedRendererID(name)) ||
		slices.Contains(r.extensions.EntryRenderer, EntryRendererID(name))
}

// Extensions returns a snapshot; mutating it does not affect the registry
func (r *Registry) Extensions() Extensions {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Extensions{
		Feed:          slices.Clone(r.extensions.Feed),
		Entry:         slices.Clone(r.extensions.Entry),
		FeedRenderer:  slices.Clone(r.extensions.FeedRenderer),
		EntryRenderer: slices.Clone(r.extensions.EntryRenderer),
	}
}

// Reset clears every role list and detaches the resolver
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resolver = nil
	r.extensions = Extensions{}
}

func (r *Registry) RegisterCore() error {
	return r.Register(CoreExtension)
}
