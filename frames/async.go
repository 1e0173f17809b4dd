package frames

import (
	"log/slog"
	"sync"
)

// AsyncLoader resolves requests on a pool of persistent worker goroutines.
// Request never blocks: when the work channel is full, requests wait on an
// overflow list that a dispatcher goroutine feeds into the channel in order.
type AsyncLoader struct {
	source     SourceFunc
	name       string
	numWorkers int

	workChan chan *PendingFrame // sends requests to workers
	wakeChan chan struct{}      // signals the dispatcher about overflow
	stopChan chan struct{}      // signals workers to exit
	wg       sync.WaitGroup     // tracks active goroutines

	mu       sync.Mutex
	overflow []*PendingFrame
	stopped  bool
}

// NewAsyncLoader starts numWorkers goroutines resolving frames from source.
func NewAsyncLoader(name string, source SourceFunc, numWorkers, queueSize int) *AsyncLoader {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	l := &AsyncLoader{
		source:     source,
		name:       name,
		numWorkers: numWorkers,
		workChan:   make(chan *PendingFrame, queueSize),
		wakeChan:   make(chan struct{}, 1),
		stopChan:   make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		l.wg.Add(1)
		go l.worker()
	}
	l.wg.Add(1)
	go l.dispatch()

	return l
}

// NewDiskLoader decodes frames from dir using the naming pattern.
func NewDiskLoader(dir, pattern string, numWorkers, queueSize int) *AsyncLoader {
	return NewAsyncLoader("disk", DiskSource(dir, pattern), numWorkers, queueSize)
}

// Request queues index for loading and returns its handle immediately.
// After Close the handle is returned but never resolved.
func (l *AsyncLoader) Request(index int) *PendingFrame {
	p := NewPendingFrame(index)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return p
	}

	// Keep FIFO order: once anything overflowed, everything goes behind it
	if len(l.overflow) == 0 {
		select {
		case l.workChan <- p:
			return p
		default:
		}
	}
	l.overflow = append(l.overflow, p)
	select {
	case l.wakeChan <- struct{}{}:
	default:
	}
	return p
}

// Backlog returns the number of requests waiting for a free channel slot.
func (l *AsyncLoader) Backlog() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.overflow)
}

// Close stops all goroutines. Requests still in flight are abandoned.
func (l *AsyncLoader) Close() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	l.overflow = nil
	l.mu.Unlock()

	close(l.stopChan)
	l.wg.Wait()
}

// dispatch moves overflowed requests into the work channel.
func (l *AsyncLoader) dispatch() {
	defer l.wg.Done()
	for {
		select {
		case <-l.stopChan:
			return
		case <-l.wakeChan:
		}

		for {
			l.mu.Lock()
			if len(l.overflow) == 0 {
				l.mu.Unlock()
				break
			}
			next := l.overflow[0]
			l.mu.Unlock()

			select {
			case l.workChan <- next:
			case <-l.stopChan:
				return
			}

			l.mu.Lock()
			if len(l.overflow) > 0 && l.overflow[0] == next {
				l.overflow[0] = nil
				l.overflow = l.overflow[1:]
			}
			l.mu.Unlock()
		}
	}
}

// worker resolves requests until stopped.
func (l *AsyncLoader) worker() {
	defer l.wg.Done()
	for {
		select {
		case <-l.stopChan:
			return
		case p := <-l.workChan:
			f, err := l.source(p.Index())
			if err != nil {
				slog.Warn("frame load failed", "loader", l.name, "index", p.Index(), "error", err)
				p.Fail(err)
				continue
			}
			p.Resolve(f)
		}
	}
}
