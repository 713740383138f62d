package registry

// Registry is the catalog of training modules, kept in registration order.
// It is owned by whoever constructs it; there is no package-level instance.
type Registry struct {
	modules []Module
}

// New creates a Registry holding the given modules in order. Later modules
// replace earlier ones with the same ID, as with Add.
func New(modules ...Module) *Registry {
	r := &Registry{}
	for _, m := range modules {
		r.Add(m)
	}
	return r
}

// ByID returns the module with the given ID.
func (r *Registry) ByID(id string) (Module, bool) {
	if i := r.index(id); i >= 0 {
		return r.modules[i], true
	}
	return Module{}, false
}

// ByCategory returns the modules in category c, in registration order.
func (r *Registry) ByCategory(c Category) []Module {
	var out []Module
	for _, m := range r.modules {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// All returns every module in registration order. The returned slice is a
// copy; later calls to Add are not reflected in it.
func (r *Registry) All() []Module {
	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// IDs returns the module IDs in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.modules))
	for i, m := range r.modules {
		ids[i] = m.ID
	}
	return ids
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}

// Add registers m. An existing module with the same ID is replaced in place,
// keeping its position; otherwise m is appended. Fields are not validated.
func (r *Registry) Add(m Module) {
	if i := r.index(m.ID); i >= 0 {
		r.modules[i] = m
		return
	}
	r.modules = append(r.modules, m)
}

func (r *Registry) index(id string) int {
	for i, m := range r.modules {
		if m.ID == id {
			return i
		}
	}
	return -1
}
