// Package watchlist provides case-insensitive address sets.
package watchlist

import (
	"strings"
)

// Matcher is the read side of a watchlist.
type Matcher interface {
	// Contains checks if an address is watched.
	Contains(address string) bool
}

// List is a Matcher that also exposes its members in a stable order.
type List interface {
	Matcher
	Addresses() []string
}

// Watchlist is an ordered set of lower-cased addresses.
// It is built once per request and is not safe for concurrent mutation.
type Watchlist struct {
	addresses map[string]struct{}
	order     []string
}

// New creates a watchlist from addresses. Blank entries are ignored and
// duplicates (in any case) keep their first position.
func New(addresses ...string) *Watchlist {
	w := &Watchlist{addresses: make(map[string]struct{}, len(addresses))}
	w.AddBatch(addresses)
	return w
}

// Normalize lower-cases and trims an address.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Add adds an address and reports whether it was new.
func (w *Watchlist) Add(address string) bool {
	addr := Normalize(address)
	if addr == "" {
		return false
	}
	if _, exists := w.addresses[addr]; exists {
		return false
	}
	w.addresses[addr] = struct{}{}
	w.order = append(w.order, addr)
	return true
}

// AddBatch adds multiple addresses.
func (w *Watchlist) AddBatch(addresses []string) {
	for _, addr := range addresses {
		w.Add(addr)
	}
}

// Contains checks if an address is watched. A nil watchlist contains nothing.
func (w *Watchlist) Contains(address string) bool {
	if w == nil {
		return false
	}
	_, exists := w.addresses[Normalize(address)]
	return exists
}

// Size returns the number of watched addresses.
func (w *Watchlist) Size() int {
	if w == nil {
		return 0
	}
	return len(w.order)
}

// Addresses returns the watched addresses in insertion order.
func (w *Watchlist) Addresses() []string {
	if w == nil {
		return nil
	}
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}
