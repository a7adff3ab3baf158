package shortlock

// DefaultSegmentSize is the number of elements per Queue segment unless
// WithSegmentSize says otherwise.
const DefaultSegmentSize = 4096

// QueueConfig defines configurable options for Queue initialization.
type QueueConfig struct {
	// segmentSize is the fixed capacity of each array segment in the
	// chain. Larger segments allocate less often but hold more memory
	// per partially drained segment.
	segmentSize int
}

// QueueOption configures a Queue.
type QueueOption func(*QueueConfig)

// WithSegmentSize sets the capacity of every segment of the queue.
// It panics if n is less than 1.
func WithSegmentSize(n int) QueueOption {
	if n < 1 {
		panic("shortlock: segment size must be at least 1")
	}
	return func(c *QueueConfig) {
		c.segmentSize = n
	}
}

func loadQueueConfig(options ...QueueOption) QueueConfig {
	c := QueueConfig{segmentSize: DefaultSegmentSize}
	for _, o := range options {
		o(&c)
	}
	return c
}
