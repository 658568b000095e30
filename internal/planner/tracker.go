package planner

// Kind identifies a planner request type.
type Kind uint8

const (
	KindMap Kind = iota
	KindPath
	KindRandomize
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindPath:
		return "path"
	case KindRandomize:
		return "randomize"
	default:
		return "unknown"
	}
}

// Tracker numbers outgoing requests and decides which responses are still
// wanted. At most one request per kind is outstanding; a response is applied
// only if its sequence is the latest issued for its kind. It is not safe for
// concurrent use and lives on the update goroutine.
type Tracker struct {
	next     uint64
	latest   [kindCount]uint64
	inFlight [kindCount]bool
}

// Begin reserves a sequence number for a new request of kind k. It returns
// false while a request of that kind is still in flight.
func (t *Tracker) Begin(k Kind) (uint64, bool) {
	if k >= kindCount || t.inFlight[k] {
		return 0, false
	}
	t.next++
	t.latest[k] = t.next
	t.inFlight[k] = true
	return t.next, true
}

// Finish records the arrival of response seq for kind k and reports whether it
// should be applied.
func (t *Tracker) Finish(k Kind, seq uint64) bool {
	if k >= kindCount || seq == 0 || seq != t.latest[k] {
		return false
	}
	t.inFlight[k] = false
	return true
}

// Invalidate marks any outstanding request of kind k as stale and frees the
// slot for a new one.
func (t *Tracker) Invalidate(k Kind) {
	if k >= kindCount {
		return
	}
	t.next++
	t.latest[k] = t.next
	t.inFlight[k] = false
}

// InFlight reports whether a request of kind k is outstanding.
func (t *Tracker) InFlight(k Kind) bool {
	return k < kindCount && t.inFlight[k]
}
