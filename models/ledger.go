package models

import "sort"

// Ledger is the set of fingerprints for articles the user has marked read.
// It's a set: inserting a fingerprint that's already present is a no-op, so the
// cardinality never reflects duplicates.
type Ledger struct {
	fingerprints map[string]struct{}
}

// NewLedger returns an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		fingerprints: make(map[string]struct{}),
	}
}

// Add inserts a fingerprint, returning false if it was already present
func (l *Ledger) Add(fingerprint string) bool {
	if _, ok := l.fingerprints[fingerprint]; ok {
		return false
	}
	l.fingerprints[fingerprint] = struct{}{}
	return true
}

// Remove deletes a fingerprint, returning false if it wasn't present
func (l *Ledger) Remove(fingerprint string) bool {
	if _, ok := l.fingerprints[fingerprint]; !ok {
		return false
	}
	delete(l.fingerprints, fingerprint)
	return true
}

// Contains reports whether a fingerprint has been marked read
func (l *Ledger) Contains(fingerprint string) bool {
	_, ok := l.fingerprints[fingerprint]
	return ok
}

// Len returns the number of fingerprints in the ledger
func (l *Ledger) Len() int {
	return len(l.fingerprints)
}

// Fingerprints returns all fingerprints in sorted order, so that persisting the
// ledger is deterministic
func (l *Ledger) Fingerprints() []string {
	out := make([]string, 0, len(l.fingerprints))
	for fp := range l.fingerprints {
		out = append(out, fp)
	}
	sort.Strings(out)
	return out
}
