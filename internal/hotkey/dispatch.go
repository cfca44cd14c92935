package hotkey

import (
	"log"
	"sync"
)

// dispatcher is a bounded task queue drained by a small fixed pool of
// workers. Shortcut callbacks fire on backend event goroutines that must
// never block, so handlers push their real work here and return. A full
// queue drops the task with a log line rather than stalling the event
// goroutine.
type dispatcher struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func newDispatcher(workers, depth int) *dispatcher {
	d := &dispatcher{tasks: make(chan func(), depth)}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.tasks {
		runTask(task)
	}
}

func runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("RECOVERED FROM PANIC IN DISPATCHED TASK: %v", r)
		}
	}()
	task()
}

// Submit enqueues a task without blocking. Returns false if the task was
// dropped because the queue is full or the dispatcher is closed.
func (d *dispatcher) Submit(task func()) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	select {
	case d.tasks <- task:
		d.mu.Unlock()
		return true
	default:
		d.mu.Unlock()
		log.Println("Dispatch queue full, dropping task")
		return false
	}
}

// Close drains the queue and waits for the workers to finish.
func (d *dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	d.wg.Wait()
}
