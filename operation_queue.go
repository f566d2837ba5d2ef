package granary

import "github.com/rotisserie/eris"

type operation struct {
	typ       operationType
	archetype uint32
	amount    int
	handles   []EntityHandle
}

type operationType int

const (
	opCreate operationType = iota
	opDestroy
)

type opQueue struct {
	createOps      []operation
	destroyOps     []operation
	pendingDestroy map[uint64]struct{}
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[uint64]struct{}),
	}
}

func (q *opQueue) EnqueueDestroy(handles []EntityHandle) {
	// Filter out already queued handles
	var fresh []EntityHandle
	for _, h := range handles {
		if _, exists := q.pendingDestroy[h.ID]; exists {
			continue
		}
		q.pendingDestroy[h.ID] = struct{}{}
		fresh = append(fresh, h)
	}
	if len(fresh) > 0 {
		q.destroyOps = append(q.destroyOps, operation{
			typ:     opDestroy,
			handles: fresh,
		})
	}
}

func (sc *scene) processOperationQueue() error {
	q := &sc.opQueue
	if len(q.createOps) == 0 && len(q.destroyOps) == 0 {
		return nil
	}

	// Process creates first
	for _, op := range q.createOps {
		for i := 0; i < op.amount; i++ {
			if _, err := sc.CreateEntity(op.archetype); err != nil {
				return eris.Wrap(err, "failed to process queued entity creation")
			}
		}
	}

	// Process destroys last; stale handles queued before a bulk reset are
	// dropped by the slot check.
	for _, op := range q.destroyOps {
		for _, h := range op.handles {
			sc.destroyResolved(h)
		}
	}

	q.createOps = q.createOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	return nil
}
