package simplify

type queueEntry struct {
	index      int
	importance int64
}

// importanceQueue is a binary heap of removal candidates. The entry with the
// smallest importance is popped first; on equal importance the higher index
// wins. Entries are never updated in place, see the sweep in simplify.
type importanceQueue []queueEntry

func (q importanceQueue) Len() int { return len(q) }

func (q importanceQueue) Less(i, j int) bool {
	if q[i].importance != q[j].importance {
		return q[i].importance < q[j].importance
	}
	return q[i].index > q[j].index
}

func (q importanceQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *importanceQueue) Push(x any) {
	*q = append(*q, x.(queueEntry))
}

func (q *importanceQueue) Pop() any {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}
