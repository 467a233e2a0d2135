package bvh

type queueItem struct {
	node NodeIndex
	cost float64
}

// searchQueue is a fixed capacity binary min-heap ordered by cost. It avoids allocations during
// insertion by reusing the same backing array.
type searchQueue struct {
	items []queueItem
	size  int
}

func newSearchQueue(capacity int) *searchQueue {
	return &searchQueue{items: make([]queueItem, capacity)}
}

func (q *searchQueue) len() int {
	return q.size
}

func (q *searchQueue) capacity() int {
	return len(q.items)
}

func (q *searchQueue) clear() {
	q.size = 0
}

// reserve raises the capacity to at least n, keeping queued items.
func (q *searchQueue) reserve(n int) {
	if n <= len(q.items) {
		return
	}
	items := make([]queueItem, n)
	copy(items, q.items[:q.size])
	q.items = items
}

func (q *searchQueue) push(item queueItem) {
	if q.size == len(q.items) {
		panic("search queue overflow")
	}
	i := q.size
	q.items[i] = item
	q.size++

	for i > 0 {
		parent := (i - 1) / 2
		if q.items[i].cost >= q.items[parent].cost {
			break
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
}

func (q *searchQueue) pop() queueItem {
	if q.size == 0 {
		panic("pop from empty search queue")
	}
	top := q.items[0]
	q.size--
	if q.size == 0 {
		return top
	}
	q.items[0] = q.items[q.size]

	i := 0
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < q.size && q.items[left].cost < q.items[smallest].cost {
			smallest = left
		}
		if right < q.size && q.items[right].cost < q.items[smallest].cost {
			smallest = right
		}
		if smallest == i {
			break
		}
		q.items[i], q.items[smallest] = q.items[smallest], q.items[i]
		i = smallest
	}
	return top
}
