package state

// Revision counts mutations of a store so that a Save racing a mutation
// never marks the newer state as persisted. Callers hold the store lock.
type Revision struct {
	current uint64
	saved   uint64
}

// Touch records a mutation.
func (r *Revision) Touch() {
	r.current++
}

// Reset starts a new generation after a load. clean reports whether the
// loaded state matches what is stored.
func (r *Revision) Reset(clean bool) {
	r.current++
	if clean {
		r.saved = r.current
	}
}

func (r *Revision) Dirty() bool {
	return r.current != r.saved
}

// Current is the revision a Save snapshot should carry.
func (r *Revision) Current() uint64 {
	return r.current
}

// MarkSaved records that the state as of revision v is persisted. Older
// revisions finishing late are ignored.
func (r *Revision) MarkSaved(v uint64) {
	if v > r.saved {
		r.saved = v
	}
}
