package service

import (
	"sync"

	"loan-calculator/domain"
)

// subscriber forwards published states to ch in order. The queue is
// unbounded so a slow reader never loses an intermediate state and never
// blocks the publisher.
type subscriber struct {
	ch     chan domain.LoanState
	wake   chan struct{}
	done   chan struct{}
	closed sync.Once

	mu    sync.Mutex
	queue []domain.LoanState
}

func newSubscriber() *subscriber {
	sub := &subscriber{
		ch:   make(chan domain.LoanState),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	return sub
}

func (s *subscriber) publish(state domain.LoanState) {
	s.mu.Lock()
	s.queue = append(s.queue, state)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) stop() {
	s.closed.Do(func() { close(s.done) })
}

func (s *subscriber) pop() (domain.LoanState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return domain.LoanState{}, false
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	return next, true
}

func (s *subscriber) run() {
	defer close(s.ch)
	for {
		for {
			next, ok := s.pop()
			if !ok {
				break
			}
			select {
			case s.ch <- next:
			case <-s.done:
				return
			}
		}

		select {
		case <-s.wake:
		case <-s.done:
			return
		}
	}
}
