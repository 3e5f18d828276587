package render

import "sync"

// sqemEdges is the 4-edge border of a rectangle in [top, bottom, left, right]
// order, matching original_source/src/drawer.py's clcoList convention.
type sqemEdges [4]edge

func allSameColor(e sqemEdges) bool {
	return e[0].unique && e[1].unique && e[2].unique && e[3].unique &&
		e[0].c == e[1].c && e[0].c == e[2].c && e[0].c == e[3].c
}

// renderVectorizedFull fills the whole oversampled buffer directly,
// parallelized by row across ctx.workers goroutines.
func renderVectorizedFull(ctx *renderCtx) {
	rows := make(chan int, ctx.oHeight)
	var wg sync.WaitGroup
	for w := 0; w < ctx.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				if ctx.isCancelled() {
					continue
				}
				ctx.vectorizedRegion(0, y, ctx.oWidth-1, y)
				ctx.reportStatus()
			}
		}()
	}
	for y := 0; y < ctx.oHeight; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()
}

// quadrant describes one of the four children produced by splitting a
// square-estimation rectangle, paired with the edges it inherits.
type quadrant struct {
	x1, y1, x2, y2 int
	edges          sqemEdges
}

// splitRect splits [x1,y1]-[x2,y2] at its midpoint, computing the two
// full midlines and reading the twelve half/mid edges off the buffer to
// build each child's border, per the layout in
// original_source/src/drawer.py's drawSquareEstimationRec.
func splitRect(ctx *renderCtx, x1, y1, x2, y2 int) [4]quadrant {
	midX := x1 + (x2-x1)/2
	midY := y1 + (y2-y1)/2

	ctx.computeLine(x1, midY, x2, midY)
	ctx.computeLine(midX, y1, midX, y2)

	e0 := ctx.getLineColor(x1, y1, midX, y1)
	e1 := ctx.getLineColor(midX, y1, x2, y1)
	e2 := ctx.getLineColor(x1, y2, midX, y2)
	e3 := ctx.getLineColor(midX, y2, x2, y2)
	e4 := ctx.getLineColor(x1, y1, x1, midY)
	e5 := ctx.getLineColor(x1, midY, x1, y2)
	e6 := ctx.getLineColor(x2, y1, x2, midY)
	e7 := ctx.getLineColor(x2, midY, x2, y2)
	e8 := ctx.getLineColor(x1, midY, midX, midY)
	e9 := ctx.getLineColor(midX, midY, x2, midY)
	e10 := ctx.getLineColor(midX, y1, midX, midY)
	e11 := ctx.getLineColor(midX, midY, midX, y2)

	return [4]quadrant{
		{x1, y1, midX, midY, sqemEdges{e0, e8, e4, e10}},
		{midX, y1, x2, midY, sqemEdges{e1, e9, e10, e6}},
		{x1, midY, midX, y2, sqemEdges{e8, e2, e5, e11}},
		{midX, midY, x2, y2, sqemEdges{e9, e3, e11, e7}},
	}
}

// sqemRecurse implements the recursive square-estimation driver: a
// uniformly-colored border below maxLen fills its interior without
// iterating it; below minLen the interior is always computed directly;
// otherwise the rectangle splits into four children, reusing shared
// edges, and recurses (fanned out across sem while capacity allows).
func sqemRecurse(ctx *renderCtx, x1, y1, x2, y2 int, edges sqemEdges, sem chan struct{}, wg *sync.WaitGroup) {
	if ctx.isCancelled() {
		return
	}
	width, height := x2-x1+1, y2-y1+1
	minSide := width
	if height < minSide {
		minSide = height
	}
	if minSide < 2 {
		return
	}

	if minSide < ctx.maxLen && allSameColor(edges) {
		ctx.fillRect(x1+1, y1+1, x2-1, y2-1, edges[0].c)
		return
	}
	if minSide < ctx.minLen {
		ctx.vectorizedRegion(x1+1, y1+1, x2-1, y2-1)
		return
	}

	children := splitRect(ctx, x1, y1, x2, y2)
	for _, ch := range children {
		ch := ch
		select {
		case sem <- struct{}{}:
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				sqemRecurse(ctx, ch.x1, ch.y1, ch.x2, ch.y2, ch.edges, sem, wg)
			}()
		default:
			sqemRecurse(ctx, ch.x1, ch.y1, ch.x2, ch.y2, ch.edges, sem, wg)
		}
	}
}

func renderSQEMRecursive(ctx *renderCtx) {
	e0 := ctx.computeLine(0, 0, ctx.oWidth-1, 0)
	e1 := ctx.computeLine(0, ctx.oHeight-1, ctx.oWidth-1, ctx.oHeight-1)
	e2 := ctx.computeLine(0, 0, 0, ctx.oHeight-1)
	e3 := ctx.computeLine(ctx.oWidth-1, 0, ctx.oWidth-1, ctx.oHeight-1)

	sem := make(chan struct{}, ctx.workers)
	var wg sync.WaitGroup
	sqemRecurse(ctx, 0, 0, ctx.oWidth-1, ctx.oHeight-1, sqemEdges{e0, e1, e2, e3}, sem, &wg)
	wg.Wait()
}

// rectJob is one pending rectangle on the explicit work stack used by the
// iterative square-estimation driver.
type rectJob struct {
	x1, y1, x2, y2 int
	edges          sqemEdges
}

// sqemQueue is the shared work stack backing DriverSQEMLinear: a single
// rectangle decomposition tree rooted at the whole image, drained by a
// pool of workers instead of by recursive calls. active counts jobs that
// exist but have not finished processing (queued or in flight); the
// queue is exhausted once active reaches zero with the stack empty.
type sqemQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	stack  []rectJob
	active int
}

func newSQEMQueue(root rectJob) *sqemQueue {
	q := &sqemQueue{stack: []rectJob{root}, active: 1}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push adds newly split children to the shared stack. Always called
// before the parent's matching finish, so active never reads zero while
// children are still on their way in.
func (q *sqemQueue) push(jobs ...rectJob) {
	q.mu.Lock()
	q.stack = append(q.stack, jobs...)
	q.active += len(jobs)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// pop blocks until a job is available or the queue is exhausted, in
// which case it returns ok=false.
func (q *sqemQueue) pop() (rectJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.stack) == 0 {
		if q.active == 0 {
			return rectJob{}, false
		}
		q.cond.Wait()
	}
	job := q.stack[len(q.stack)-1]
	q.stack = q.stack[:len(q.stack)-1]
	return job, true
}

// finish marks the job most recently popped by the caller as done.
func (q *sqemQueue) finish() {
	q.mu.Lock()
	q.active--
	done := q.active == 0
	q.mu.Unlock()
	if done {
		q.cond.Broadcast()
	}
}

// sqemLinearStep processes one rectangle of the shared decomposition:
// the same leaf/split rule as sqemRecurse, but split children are pushed
// onto the shared queue instead of being recursed into directly, so the
// call stack never grows (spec.md §4.5(c): "explicit work stack of
// pending rectangles; no implicit recursion").
func sqemLinearStep(ctx *renderCtx, q *sqemQueue, job rectJob) {
	defer q.finish()

	if ctx.isCancelled() {
		return
	}
	width, height := job.x2-job.x1+1, job.y2-job.y1+1
	minSide := width
	if height < minSide {
		minSide = height
	}
	if minSide < 2 {
		return
	}

	if minSide < ctx.maxLen && allSameColor(job.edges) {
		ctx.fillRect(job.x1+1, job.y1+1, job.x2-1, job.y2-1, job.edges[0].c)
		return
	}
	if minSide < ctx.minLen {
		ctx.vectorizedRegion(job.x1+1, job.y1+1, job.x2-1, job.y2-1)
		return
	}

	children := splitRect(ctx, job.x1, job.y1, job.x2, job.y2)
	jobs := make([]rectJob, len(children))
	for i, ch := range children {
		jobs[i] = rectJob{ch.x1, ch.y1, ch.x2, ch.y2, ch.edges}
	}
	q.push(jobs...)
}

// renderSQEMLinear solves the whole image as a single rectangle via a
// work-stack queue shared by ctx.workers goroutines (spec.md §5: sibling
// rectangles from a single split may run in parallel; a parent's
// children all complete — here, are all drained from the queue — before
// the render as a whole is done). This is the same decomposition tree as
// renderSQEMRecursive, just walked with an explicit queue instead of the
// call stack, so it makes the identical leaf/split calls and produces a
// bit-identical image.
func renderSQEMLinear(ctx *renderCtx) {
	x1, y1, x2, y2 := 0, 0, ctx.oWidth-1, ctx.oHeight-1
	e0 := ctx.computeLine(x1, y1, x2, y1)
	e1 := ctx.computeLine(x1, y2, x2, y2)
	e2 := ctx.computeLine(x1, y1, x1, y2)
	e3 := ctx.computeLine(x2, y1, x2, y2)

	q := newSQEMQueue(rectJob{x1, y1, x2, y2, sqemEdges{e0, e1, e2, e3}})

	workers := ctx.workers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				job, ok := q.pop()
				if !ok {
					return
				}
				sqemLinearStep(ctx, q, job)
				ctx.reportStatus()
			}
		}()
	}
	wg.Wait()
}
