package lattice

type requestType int

const (
	requestPositionSync requestType = iota
	requestSnap
	requestGridMoved
)

type request struct {
	typ    requestType
	target EntityID
	policy SnapPolicy
}

// requestQueue holds synchronization requests in arrival order until the next flush
type requestQueue struct {
	pending []request
}

func (q *requestQueue) push(r request) {
	q.pending = append(q.pending, r)
}

func (q *requestQueue) size() int {
	return len(q.pending)
}

func (q *requestQueue) reset() {
	clear(q.pending)
	q.pending = q.pending[:0]
}
