// Package codes validates asset/currency codes and provides a weak-value
// registry so that codes become available for reuse once the object they
// were registered to is garbage collected, mirroring the
// WeakValueDictionary-backed Codes class the rest of the domain model is
// built around.
package codes

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"weak"

	"github.com/aristath/backtrade/backtraderr"
)

// Code is a normalized asset or currency identifier: trimmed and upper-cased.
type Code string

// Normalize trims whitespace and upper-cases s, matching clean_string in the
// original util module.
func Normalize(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// Check normalizes s into an asset Code. Go's static typing already rules
// out the "not a string" failure mode the original check_code guarded
// against, so there is nothing left to validate here.
func Check(s string) Code {
	return Normalize(s)
}

// CheckCurrencyCode validates s as a 3-letter currency code, normalizing it.
func CheckCurrencyCode(s string) (Code, error) {
	code := Normalize(s)
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code must be 3 characters, got %q", backtraderr.ErrDomainViolation, string(code))
	}
	return code, nil
}

// Ref boxes v on the heap and returns its address. Used when a concrete
// object needs to register itself in a Registry[T] for an interface or
// `any` T: the concrete object holds the returned pointer (so the box
// cannot be collected before the object itself is collected), and the box
// holds v (so the registry's weak pointer correctly tracks the concrete
// object's liveness rather than the box's).
func Ref[T any](v T) *T {
	p := new(T)
	*p = v
	return p
}

// Registry associates codes with weakly-held objects of type T. A code stays
// registered only as long as the object it names remains reachable
// elsewhere; once it is collected the code becomes free for reuse.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[Code]weak.Pointer[T]
}

// NewRegistry returns an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[Code]weak.Pointer[T])}
}

// Reset clears every registered code, matching Codes.reset() creating a
// fresh WeakValueDictionary.
func (r *Registry[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[Code]weak.Pointer[T])
}

// prune drops any entry whose weak pointer no longer resolves. Must be
// called with r.mu held.
func (r *Registry[T]) prune() {
	for code, wp := range r.entries {
		if wp.Value() == nil {
			delete(r.entries, code)
		}
	}
}

// Register associates code with obj. Registering the same code with the
// same object again is a no-op; registering it with a different object
// returns ErrNameConflict.
func (r *Registry[T]) Register(code Code, obj *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	if existing, ok := r.entries[code]; ok {
		if existing.Value() == obj {
			return nil
		}
		return fmt.Errorf("%w: code %q is already in use", backtraderr.ErrNameConflict, string(code))
	}
	r.entries[code] = weak.Make(obj)
	runtime.AddCleanup(obj, func(c Code) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if wp, ok := r.entries[c]; ok && wp.Value() == nil {
			delete(r.entries, c)
		}
	}, code)
	return nil
}

// CodeInUse reports whether code currently resolves to a live object.
func (r *Registry[T]) CodeInUse(code Code) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	_, ok := r.entries[code]
	return ok
}

// GetObjectForCode returns the live object registered under code, or nil.
func (r *Registry[T]) GetObjectForCode(code Code) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	wp, ok := r.entries[code]
	if !ok {
		return nil
	}
	return wp.Value()
}

// GetRegisteredCodes returns every currently-live code, sorted.
func (r *Registry[T]) GetRegisteredCodes() []Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	out := make([]Code, 0, len(r.entries))
	for code := range r.entries {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GetInstances returns every currently-live registered object.
func (r *Registry[T]) GetInstances() []*T {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	out := make([]*T, 0, len(r.entries))
	for _, wp := range r.entries {
		if v := wp.Value(); v != nil {
			out = append(out, v)
		}
	}
	return out
}
