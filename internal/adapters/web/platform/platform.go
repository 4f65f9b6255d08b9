package platform

import (
	"fmt"
	"sync"
	"time"

	"github.com/jsamuelsen11/guise/internal/domain"
)

// DefaultPollInterval is used while no object requests a shorter one.
const DefaultPollInterval = 5 * time.Minute

// Platform is the per-session view of the browser.
type Platform struct {
	defaultPoll time.Duration

	mu       sync.Mutex
	queue    []Message
	poll     time.Duration
	requests map[any]time.Duration
}

// New returns a platform polling at defaultPoll, or at DefaultPollInterval
// when defaultPoll is not positive.
func New(defaultPoll time.Duration) *Platform {
	if defaultPoll <= 0 {
		defaultPoll = DefaultPollInterval
	}
	return &Platform{
		defaultPoll: defaultPoll,
		poll:        defaultPoll,
		requests:    make(map[any]time.Duration),
	}
}

// Send queues a message for the browser.
func (p *Platform) Send(m Message) {
	p.mu.Lock()
	p.queue = append(p.queue, m)
	p.mu.Unlock()
}

// Pending returns the number of queued messages.
func (p *Platform) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Drain removes and returns the queued messages in send order.
func (p *Platform) Drain() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := p.queue
	p.queue = nil
	return msgs
}

// PollInterval returns the interval the browser polls at.
func (p *Platform) PollInterval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.poll
}

// SetPollInterval changes the interval and tells the browser.
func (p *Platform) SetPollInterval(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("poll interval %v: %w", d, domain.ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setPollLocked(d)
	return nil
}

func (p *Platform) setPollLocked(d time.Duration) {
	if d == p.poll {
		return
	}
	p.poll = d
	p.queue = append(p.queue, Message{
		Command: CommandPollInterval,
		Params:  map[string]any{ParamInterval: d.Milliseconds()},
	})
}

// RequestPollInterval records that obj needs polling at least every d. It
// reports whether the effective interval was lowered.
func (p *Platform) RequestPollInterval(obj any, d time.Duration) (bool, error) {
	if d < 0 {
		return false, fmt.Errorf("poll interval %v: %w", d, domain.ErrInvalidArgument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests[obj] = d
	if d < p.poll {
		p.setPollLocked(d)
		return true, nil
	}
	return false, nil
}

// DiscontinuePollInterval withdraws obj's request. It reports whether the
// effective interval changed.
func (p *Platform) DiscontinuePollInterval(obj any) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.requests[obj]
	if !ok {
		return false
	}
	delete(p.requests, obj)
	if d > p.poll {
		return false
	}
	next := p.defaultPoll
	for _, r := range p.requests {
		next = min(next, r)
	}
	if next == p.poll {
		return false
	}
	p.setPollLocked(next)
	return true
}

// PollRequesters returns the number of objects with an outstanding request.
func (p *Platform) PollRequesters() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}
