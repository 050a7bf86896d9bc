package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const DefaultFeedSize = 50

// Feed buffers notices until the UI drains them. When full, the oldest
// notice is dropped.
type Feed struct {
	mu      sync.Mutex
	size    int
	pending []Notice
	log     logrus.FieldLogger
}

func NewFeed(size int, log logrus.FieldLogger) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{
		size: size,
		log:  log.WithField("component", "notify"),
	}
}

func (f *Feed) Notify(n Notice) {
	entry := f.log.WithFields(logrus.Fields{"notice_level": n.Level, "kind": n.Kind})
	if n.Level == LevelError {
		entry.Warn(n.Message)
	} else {
		entry.Debug(n.Message)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pending) == f.size {
		f.pending = f.pending[1:]
	}
	f.pending = append(f.pending, n)
}

// Drain returns the pending notices, oldest first, and empties the feed.
func (f *Feed) Drain() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.pending
	f.pending = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// Len reports how many notices are waiting.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}
