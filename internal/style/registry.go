// Package style collects the CSS rules that rendered fragments depend on.
package style

import (
	"strings"
	"sync"

	"qtirender/internal/domain"
)

// VisuallyHiddenID identifies the rule behind the visually hidden class used
// for generated descriptions.
const VisuallyHiddenID = "qti-visually-hidden"

// VisuallyHiddenCSS keeps text in the accessibility tree while removing it
// from the visual layout.
const VisuallyHiddenCSS = `.qti-visually-hidden{position:absolute;width:1px;height:1px;padding:0;margin:-1px;overflow:hidden;clip:rect(0,0,0,0);white-space:nowrap;border:0}`

// Registry holds style rules keyed by id, in insertion order.
type Registry struct {
	mu    sync.Mutex
	order []string
	rules map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]string)}
}

// Has reports whether a rule with the given id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rules[id]
	return ok
}

// Add registers css under id. It returns false, leaving the existing rule in
// place, when id is already registered.
func (r *Registry) Add(id, css string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[id]; ok {
		return false
	}
	r.rules[id] = css
	r.order = append(r.order, id)
	return true
}

// Rules returns the registered rules in insertion order.
func (r *Registry) Rules() []domain.StyleRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StyleRule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, domain.StyleRule{ID: id, CSS: r.rules[id]})
	}
	return out
}

// CSS concatenates every rule, one per line.
func (r *Registry) CSS() string {
	rules := r.Rules()
	parts := make([]string, 0, len(rules))
	for _, rule := range rules {
		parts = append(parts, rule.CSS)
	}
	return strings.Join(parts, "\n")
}

// RenderTags returns one <style> element per rule.
func (r *Registry) RenderTags() string {
	return Tags(r.Rules())
}

// Tags renders rules as <style data-style-id="..."> elements.
func Tags(rules []domain.StyleRule) string {
	var sb strings.Builder
	for _, rule := range rules {
		sb.WriteString(`<style data-style-id="`)
		sb.WriteString(rule.ID)
		sb.WriteString(`">`)
		sb.WriteString(rule.CSS)
		sb.WriteString("</style>")
	}
	return sb.String()
}

// EnsureVisuallyHidden registers the visually hidden rule once.
func EnsureVisuallyHidden(r *Registry) {
	r.Add(VisuallyHiddenID, VisuallyHiddenCSS)
}
