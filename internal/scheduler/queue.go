package scheduler

// Queue is a serial task queue drained by a single worker. The driver
// submits one engine step per task and re-submits itself after each one, so
// host tasks pushed onto the same queue interleave between steps instead of
// waiting for the whole run.
type Queue struct {
	tasks chan func()
}

func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{tasks: make(chan func(), size)}
}

// Submit enqueues a task. Blocks if the queue is full.
func (q *Queue) Submit(fn func()) {
	q.tasks <- fn
}

// Tasks exposes the receive side for the drain loop.
func (q *Queue) Tasks() <-chan func() {
	return q.tasks
}
