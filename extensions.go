package vkboot

import "sort"

// NameSet is a set of extension or layer names.
type NameSet map[string]struct{}

func newNameSet(names []string) NameSet {
	set := make(NameSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Missing returns the required names not present in s, in request order and
// without duplicates.
func (s NameSet) Missing(required []string) []string {
	missing := []string{}
	seen := make(map[string]struct{}, len(required))
	for _, req := range required {
		if _, dup := seen[req]; dup {
			continue
		}
		seen[req] = struct{}{}
		if !s.Has(req) {
			missing = append(missing, req)
		}
	}
	return missing
}

// Probe queries the driver for the instance-level capabilities on offer.
// It never mutates driver state.
type Probe struct {
	Driver Driver
}

// InstanceExtensions gets the set of instance extensions available on the platform.
func (p Probe) InstanceExtensions() (NameSet, error) {
	names, err := p.Driver.InstanceExtensions()
	if err != nil {
		return nil, err
	}
	return newNameSet(names), nil
}

// InstanceLayers gets the set of instance layers available on the platform.
func (p Probe) InstanceLayers() (NameSet, error) {
	names, err := p.Driver.InstanceLayers()
	if err != nil {
		return nil, err
	}
	return newNameSet(names), nil
}

// Requirement pairs a list of names that must be present with what the
// platform actually offers.
type Requirement struct {
	Required []string
	Actual   NameSet
}

// HasRequired reports whether every required name is offered, and which are not.
func (r Requirement) HasRequired() (bool, []string) {
	missing := r.Actual.Missing(r.Required)
	return len(missing) == 0, missing
}
