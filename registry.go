package loggers

import (
	"sync"
)

// Ident is a syslog identity owned by one syslog sink
// Identities compare by pointer, two sinks using the same name still own distinct identities
type Ident struct {
	name string
}

// NewIdent creates an owned identity
func NewIdent(name string) *Ident {
	return &Ident{name: name}
}

// Name returns the tag sent to syslog
func (i *Ident) Name() string {
	if i == nil {
		return ""
	}
	return i.name
}

// IdentityRegistry records which identity is registered with the OS syslog facility
// The OS facility holds a single connection per process, so a sink may only close it
// while its own identity is still the registered one
type IdentityRegistry interface {
	// Register runs open and, on success, records id as current when id is non-nil
	Register(id *Ident, open func() error) error
	// UnregisterIfCurrent runs closeFn and clears the record only if id is current
	UnregisterIfCurrent(id *Ident, closeFn func()) bool
}

// identityRegistry is the mutex-guarded IdentityRegistry implementation
type identityRegistry struct {
	mu      sync.Mutex
	current *Ident
}

// NewIdentityRegistry creates an empty registry, mainly for tests
func NewIdentityRegistry() IdentityRegistry {
	return &identityRegistry{}
}

// processRegistry coordinates all syslog sinks of the process
var processRegistry = &identityRegistry{}

// ProcessIdentityRegistry returns the process-wide registry used by default
func ProcessIdentityRegistry() IdentityRegistry {
	return processRegistry
}

func (r *identityRegistry) Register(id *Ident, open func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := open(); err != nil {
		return err
	}
	if id != nil {
		r.current = id
	}
	return nil
}

func (r *identityRegistry) UnregisterIfCurrent(id *Ident, closeFn func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == nil || r.current != id {
		return false
	}
	closeFn()
	r.current = nil
	return true
}

// Current returns the registered identity, nil when none
func (r *identityRegistry) Current() *Ident {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
