package action

import "slices"

// Queue holds the plans declared during a planning phase.
type Queue struct {
	plans []Plan
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{plans: make([]Plan, 0, 8)}
}

// Add appends a plan.
func (q *Queue) Add(p Plan) {
	q.plans = append(q.plans, p)
}

// Remove drops the plan at index i. Out-of-range indexes are ignored.
func (q *Queue) Remove(i int) {
	if i < 0 || i >= len(q.plans) {
		return
	}
	q.plans = append(q.plans[:i], q.plans[i+1:]...)
}

// RemoveTransaction drops every plan in a transaction and returns how many
// were removed. An empty id removes nothing.
func (q *Queue) RemoveTransaction(id string) int {
	if id == "" {
		return 0
	}
	n := 0
	for _, p := range q.plans {
		if p.transaction != id {
			q.plans[n] = p
			n++
		}
	}
	removed := len(q.plans) - n
	clear(q.plans[n:])
	q.plans = q.plans[:n]
	return removed
}

// RemoveSource drops every plan declared by a unit and returns how many
// were removed.
func (q *Queue) RemoveSource(unitID string) int {
	n := 0
	for _, p := range q.plans {
		if p.source == nil || p.source.ID() != unitID {
			q.plans[n] = p
			n++
		}
	}
	removed := len(q.plans) - n
	clear(q.plans[n:])
	q.plans = q.plans[:n]
	return removed
}

// Plans returns a copy of the plans in insertion order. A nil queue has none.
func (q *Queue) Plans() []Plan {
	if q == nil {
		return nil
	}
	out := make([]Plan, len(q.plans))
	copy(out, q.plans)
	return out
}

// Ordered returns a copy sorted by phase index. Plans in the same phase keep
// their insertion order.
func (q *Queue) Ordered() []Plan {
	out := q.Plans()
	slices.SortStableFunc(out, func(a, b Plan) int {
		return a.phase - b.phase
	})
	return out
}

// Len returns the number of queued plans.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.plans)
}

// Reset empties the queue.
func (q *Queue) Reset() {
	clear(q.plans)
	q.plans = q.plans[:0]
}
