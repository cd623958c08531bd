package parallel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rs/zerolog"

	"github.com/bparr/kenken-solver/internal/grid"
	"github.com/bparr/kenken-solver/internal/obs"
	"github.com/bparr/kenken-solver/internal/solver"
)

// queueCapacity is the fixed ring-buffer capacity per worker.
const queueCapacity = 20

// Driver runs the work-stealing parallel search over a pristine,
// solved-nowhere grid using a fixed pool of workers.
type Driver struct {
	pristine     *grid.Grid
	workers      int
	maxJobLength int
	log          zerolog.Logger

	queues []*Queue
	found  atomic.Bool

	mu       sync.Mutex
	solution *grid.Grid
}

// NewDriver builds a driver over g (not mutated; cloned per job) with the
// given worker count. log receives one Debug event per split and one when a
// solution is found; split events, and found events from a worker's serial
// search, carry a per-worker correlation id.
func NewDriver(g *grid.Grid, workers int, log zerolog.Logger) *Driver {
	if workers < 1 {
		workers = 1
	}
	queues := make([]*Queue, workers)
	for i := range queues {
		queues[i] = NewQueue(queueCapacity)
	}
	queues[0].Push(Job{})

	return &Driver{
		pristine:     g,
		workers:      workers,
		maxJobLength: 5 * g.N,
		log:          log,
		queues:       queues,
	}
}

// Run starts all workers and blocks until one finds a solution or ctx is
// cancelled. Workers keep polling empty queues rather than stopping when the
// work runs out, so for a puzzle with no solution Run returns only once ctx
// is cancelled. It returns the winning grid (nil on failure), aggregate
// search stats, and whether a solution was found.
func (d *Driver) Run(ctx context.Context) (*grid.Grid, solver.Stats, bool) {
	start := time.Now()
	var totalNodes atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	for id := 0; id < d.workers; id++ {
		id := id
		eg.Go(func() error {
			nodes := d.runWorker(ctx, id)
			totalNodes.Add(nodes)
			return nil
		})
	}
	_ = eg.Wait()

	stats := solver.Stats{Nodes: totalNodes.Load(), Elapsed: time.Since(start)}
	return d.solution, stats, d.found.Load()
}

func (d *Driver) runWorker(ctx context.Context, id int) int64 {
	var nodes int64
	log, _ := obs.WithJobID(d.log)

	for {
		if d.found.Load() {
			return nodes
		}
		select {
		case <-ctx.Done():
			return nodes
		default:
		}

		job, ok := d.stealOrPopNextJob(id)
		if !ok {
			// Busy-spin on empty queues: there is no global quiescence
			// detection, so an unsolvable puzzle livelocks every worker
			// until the caller cancels ctx. Every puzzle this engine is run
			// on is assumed solvable.
			continue
		}

		local := d.pristine.Clone()
		d.replay(local, job)

		if d.shouldSplit(id, job) {
			log.Debug().Int("worker", id).Int("job_len", len(job.Assignments)).Msg("split")
			nodes++
			d.splitIntoQueue(id, local, job)
			continue
		}

		solved, st := solver.SolveWithStop(local, &d.found)
		nodes += st.Nodes
		if solved {
			d.win(local, id, log)
			return nodes
		}
	}
}

// replay forces each of job's assignments onto g in order, bypassing MRV
// selection entirely: each cell is forced to its recorded value.
func (d *Driver) replay(g *grid.Grid, job Job) {
	for _, a := range job.Assignments {
		g.Enter(a.Cell)
		g.TryValue(a.Cell, grid.Unassigned, a.Value)
	}
}

func (d *Driver) shouldSplit(id int, job Job) bool {
	return len(job.Assignments) < d.maxJobLength && d.queues[id].Free() >= d.pristine.N
}

// splitIntoQueue picks the next MRV cell on g (already replayed to job's
// state) and pushes one child job per permitted value onto the worker's
// own queue tail. Deeper recursive splitting is left to whichever worker
// next pops one of these children and finds it still short enough and its
// own queue still roomy — an iterative rendering of a recursive splitter
// that reaches the same fixed point without this call needing to reserve
// nested stack frames for grandchildren it may never get to.
func (d *Driver) splitIntoQueue(id int, g *grid.Grid, job Job) {
	i, ok := g.SelectCell()
	if !ok {
		d.win(g, id, d.log)
		return
	}
	if g.Cells[i].NumPossibles == 0 {
		return
	}

	g.Enter(i)
	for v := g.N; v >= 1; v-- {
		if !g.CanTry(i, v) {
			continue
		}
		if d.queues[id].Free() <= 0 {
			break
		}
		d.queues[id].Push(job.extend(i, v))
	}
}

func (d *Driver) win(g *grid.Grid, id int, log zerolog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.found.Load() {
		return
	}
	d.solution = g
	d.found.Store(true)
	log.Debug().Int("worker", id).Msg("found")
}

// stealOrPopNextJob scans queues starting at this worker's own id, popping
// the first non-empty one it finds. This both drains the worker's own
// queue and steals from others once its own runs dry.
func (d *Driver) stealOrPopNextJob(id int) (Job, bool) {
	for i := 0; i < d.workers; i++ {
		qi := (id + i) % d.workers
		if job, ok := d.queues[qi].Pop(); ok {
			return job, true
		}
	}
	return Job{}, false
}
