package lint

import (
	"sync"
)

// Rule defines the interface for lint rules.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "duplicate-attribute").
	ID() string
	// Description returns a brief description of what the rule checks.
	Description() string
	// Check inspects one element and adds any findings to sink.
	// It must not fail; an unmet precondition simply reports nothing.
	Check(ctx *Context, sink *Sink)
}

// RuleInfo describes a rule or sub-rule for listings.
type RuleInfo struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	// Parent is the ID of the composite rule running this one, if any.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// CompositeRule is a Rule that runs several checks in one pass and reports
// them under their own IDs.
type CompositeRule interface {
	Rule
	// SubRules describes the checks the rule runs.
	SubRules() []RuleInfo
}

// Registry maintains an ordered collection of rules. Rules run in the order
// they were first registered.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
	index map[string]int
}

// NewRegistry creates a registry holding rules in the given order.
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{
		index: make(map[string]int),
	}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it is replaced in place.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.index[rule.ID()]; ok {
		r.rules[i] = rule
		return
	}
	r.index[rule.ID()] = len(r.rules)
	r.rules = append(r.rules, rule)
}

// Get returns the rule with the given ID, or nil if not found.
func (r *Registry) Get(id string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.index[id]; ok {
		return r.rules[i]
	}
	return nil
}

// All returns all registered rules in registration order.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules := make([]Rule, len(r.rules))
	copy(rules, r.rules)
	return rules
}

// IDs returns all registered rule IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.rules))
	for i, rule := range r.rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Describe lists every rule followed by its sub-rules, in registration order.
func (r *Registry) Describe() []RuleInfo {
	var infos []RuleInfo
	for _, rule := range r.All() {
		infos = append(infos, RuleInfo{ID: rule.ID(), Description: rule.Description()})
		if c, ok := rule.(CompositeRule); ok {
			for _, sub := range c.SubRules() {
				sub.Parent = rule.ID()
				infos = append(infos, sub)
			}
		}
	}
	return infos
}

// Known reports whether id names a registered rule or sub-rule.
func (r *Registry) Known(id string) bool {
	for _, info := range r.Describe() {
		if info.ID == id {
			return true
		}
	}
	return false
}
