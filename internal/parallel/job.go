// Package parallel implements a work-stealing parallel search driver: each
// worker owns a bounded job queue of partial assignments, workers steal
// from one another, and jobs are split into sub-jobs that become new queue
// entries.
package parallel

// Assignment is one (cell, value) pair in a job's replay sequence.
type Assignment struct {
	Cell  int
	Value int
}

// Job is a partial descent from the root: a sequence of assignments a
// worker replays onto a fresh clone of the pristine grid before either
// splitting further or running the serial solver on what's left.
type Job struct {
	Assignments []Assignment
}

// extend returns a new job with one more assignment appended, without
// mutating the receiver (job queues only ever hand out owned copies).
func (j Job) extend(cell, value int) Job {
	next := make([]Assignment, len(j.Assignments), len(j.Assignments)+1)
	copy(next, j.Assignments)
	return Job{Assignments: append(next, Assignment{Cell: cell, Value: value})}
}
