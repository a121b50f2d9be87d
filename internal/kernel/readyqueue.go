package kernel

import "sort"

// readyQueue is the ordered working set the round-robin and priority
// schedulers rotate and sort. Membership here always matches
// ProcessState == StateReady; every mutation of the queue is paired with
// a matching state transition in the caller (blocking.go, syscalls.go).
type readyQueue struct {
	procs []*Process
}

func (q *readyQueue) pushBack(p *Process) {
	q.procs = append(q.procs, p)
}

// removeByID deletes the descriptor with the given id, if present.
// O(n) removal is acceptable at the process-table sizes this simulates.
func (q *readyQueue) removeByID(id int) {
	for i, p := range q.procs {
		if p.ID == id {
			q.procs = append(q.procs[:i], q.procs[i+1:]...)
			return
		}
	}
}

func (q *readyQueue) front() *Process {
	if len(q.procs) == 0 {
		return nil
	}
	return q.procs[0]
}

func (q *readyQueue) len() int {
	return len(q.procs)
}

// sortByPriority orders the queue ascending by priority (lower wins),
// breaking ties by ascending id.
func (q *readyQueue) sortByPriority() {
	sort.SliceStable(q.procs, func(i, j int) bool {
		if q.procs[i].Priority != q.procs[j].Priority {
			return q.procs[i].Priority < q.procs[j].Priority
		}
		return q.procs[i].ID < q.procs[j].ID
	})
}
