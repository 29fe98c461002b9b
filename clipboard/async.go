package clipboard

import (
	"log"
	"sync"
)

// AsyncSink hands writes to a background goroutine so slow clipboard
// programs never block the caller
// Writes are applied in order; failures are logged
type AsyncSink struct {
	sink  Sink
	queue chan string
	done  chan struct{}
	once  sync.Once
}

// asyncQueueSize bounds pending writes; older entries are dropped when full
const asyncQueueSize = 8

// Async wraps sink and starts its writer goroutine
func Async(sink Sink) *AsyncSink {
	a := &AsyncSink{
		sink:  sink,
		queue: make(chan string, asyncQueueSize),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncSink) run() {
	defer close(a.done)
	for text := range a.queue {
		if err := a.sink.Write(text); err != nil {
			log.Printf("clipboard write: %v", err)
		}
	}
}

// Write queues text and returns immediately
func (a *AsyncSink) Write(text string) error {
	for {
		select {
		case a.queue <- text:
			return nil
		default:
		}
		// Full: drop the oldest pending copy
		select {
		case <-a.queue:
		default:
		}
	}
}

// Close flushes pending writes and stops the writer
// Write must not be called after Close
func (a *AsyncSink) Close() {
	a.once.Do(func() { close(a.queue) })
	<-a.done
}
