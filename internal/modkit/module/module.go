// Package module is the contract every service module satisfies.
// It sits below modkit so a module can export its ports type without an import cycle
package module

import (
	phttp "chatstats/internal/platform/net/http"
)

// Module mounts its routes and may publish ports for other modules
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}

// HasPorts is false for a nil module or one with nothing to publish
func HasPorts(m Module) bool {
	return m != nil && m.Ports() != nil
}
