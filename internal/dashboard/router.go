package dashboard

import (
	"sync"

	"github.com/a-h/templ"
)

// Router tracks which sidebar page is active for one dashboard session.
// It has no history; every navigation simply replaces the active label.
type Router struct {
	mu         sync.RWMutex
	registry   *Registry
	activePage string
}

// NewRouter creates a router showing the default page
func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry, activePage: DefaultPage}
}

// Navigate makes label the active page and returns the label actually
// selected. Unregistered labels select the default page.
func (r *Router) Navigate(label string) string {
	if _, ok := r.registry.Lookup(label); !ok {
		label = DefaultPage
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.activePage = label
	return label
}

// ActivePage returns the currently selected label
func (r *Router) ActivePage() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activePage
}

// CurrentContent returns the component registered for the active page, or
// the default page's component.
func (r *Router) CurrentContent() templ.Component {
	if component, ok := r.registry.Lookup(r.ActivePage()); ok {
		return component
	}
	if component, ok := r.registry.Lookup(DefaultPage); ok {
		return component
	}
	return templ.NopComponent
}

// Labels returns the sidebar entries
func (r *Router) Labels() []string {
	return r.registry.Labels()
}
