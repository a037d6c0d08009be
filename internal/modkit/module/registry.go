package module

import "sync"

// registry holds the port sets modules publish at startup so siblings can find each other
type registry struct {
	mu    sync.RWMutex
	ports map[string]any
}

var ports = &registry{ports: map[string]any{}}

func (r *registry) put(name string, p any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ports[name] = p
}

func (r *registry) get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.ports[name]
	return p, ok
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ports = map[string]any{}
}

// Register publishes the port set of module name. A later call replaces it
func Register(name string, p any) { ports.put(name, p) }

// PortsAs returns the port set of name as T. ok is false when it is missing or of another type
func PortsAs[T any](name string) (out T, ok bool) {
	p, found := ports.get(name)
	if !found {
		return out, false
	}
	out, ok = p.(T)
	return out, ok
}

// Reset forgets every registered port set
func Reset() { ports.clear() }
