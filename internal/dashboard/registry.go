package dashboard

import (
	"sync"

	"github.com/a-h/templ"
)

// Page labels shown in the sidebar
const (
	PageDashboard   = "Dashboard"
	PageProducts    = "Products"
	PageClients     = "Clients"
	PageCommissions = "Commissions"
	PageMarketing   = "Marketing"
	PageHelp        = "Help & Support"
	PageNoticeBoard = "Notice Board"
	PagePricing     = "Pricing"
	PageProfile     = "My Profile"
)

// DefaultPage is shown at mount and for any unregistered label
const DefaultPage = PageDashboard

// Registry maps sidebar labels to the component that renders their content
type Registry struct {
	mu         sync.RWMutex
	labels     []string
	components map[string]templ.Component
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]templ.Component)}
}

// Register adds or replaces the component for a label. Labels keep their
// first registration order.
func (r *Registry) Register(label string, component templ.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.components[label]; !exists {
		r.labels = append(r.labels, label)
	}
	r.components[label] = component
}

// Lookup retrieves the component for a label
func (r *Registry) Lookup(label string) (templ.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	component, ok := r.components[label]
	return component, ok
}

// Labels returns the registered labels in sidebar order
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}
