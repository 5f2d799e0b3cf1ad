package weft

// A queue is a FIFO of continuations, built on two slices.
// Push appends to the tail; Pop consumes the head and, when the head runs
// out, swaps in the tail. Both slices share their backing arrays across
// swaps, so a loop that keeps a steady number of pending continuations
// stops allocating.
type queue struct {
	head, tail []func()
}

func (q *queue) Empty() bool {
	return len(q.head) == 0 && len(q.tail) == 0
}

func (q *queue) Push(f func()) {
	q.tail = append(q.tail, f)
}

func (q *queue) Pop() func() {
	if len(q.head) == 0 {
		q.head, q.tail = q.tail, q.head[:0]
	}

	f := q.head[0]
	q.head[0] = nil
	q.head = q.head[1:]

	return f
}
