package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"loan-calculator/domain"
	"loan-calculator/repository"
)

// Store owns the current LoanState. It is the only component that runs the
// reducer, touches the selection repository or calls the submission gateway.
// All state changes are serialized by mu, including the ones produced by
// background submission jobs.
type Store struct {
	selections   repository.LoanSelectionRepository
	gateway      SubmissionGateway
	logger       *zap.Logger
	now          func() time.Time
	dismissDelay time.Duration

	// ctx lives as long as the store; Close cancels it
	ctx    context.Context
	cancel context.CancelFunc
	jobs   sync.WaitGroup
	pumps  sync.WaitGroup
	// io tracks dispatches that may still touch the selection repository
	io sync.WaitGroup

	mu          sync.Mutex
	state       domain.LoanState
	closed      bool
	inFlight    bool
	generation  uint64
	saveSeq     uint64
	subscribers map[*subscriber]struct{}

	// saveMu orders repository writes; savedSeq is the last one written
	saveMu   sync.Mutex
	savedSeq uint64
}

type pendingSave struct {
	seq uint64
	sel domain.LoanSelection
}

type StoreOption func(*Store)

// WithClock replaces time.Now as the source of reference dates.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithDismissDelay sets how long a success status is kept before it is cleared.
func WithDismissDelay(d time.Duration) StoreOption {
	return func(s *Store) { s.dismissDelay = d }
}

// NewStore creates a store holding the default state and immediately restores
// the persisted selection, if any.
func NewStore(
	ctx context.Context,
	selections repository.LoanSelectionRepository,
	gateway SubmissionGateway,
	logger *zap.Logger,
	opts ...StoreOption,
) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		selections:   selections,
		gateway:      gateway,
		logger:       logger,
		now:          time.Now,
		dismissDelay: DefaultDismissDelay,
		subscribers:  make(map[*subscriber]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.state = domain.NewLoanState(s.now())

	s.Dispatch(ctx, domain.LoadFromDefaults{})
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() domain.LoanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action and runs its side effects. A Submit(Loading) starts
// the submission in the background and returns without waiting for it.
// Dispatching to a closed store does nothing. Repository I/O runs outside
// the state lock.
func (s *Store) Dispatch(ctx context.Context, action domain.Action) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("dispatch on closed store ignored")
		return
	}
	s.io.Add(1)
	s.mu.Unlock()
	defer s.io.Done()

	action = s.prepare(ctx, action)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("dispatch on closed store ignored")
		return
	}

	prev := s.state
	s.apply(action)

	var save *pendingSave
	switch a := action.(type) {
	case domain.UpdateAmount:
		if s.state.Amount != prev.Amount {
			save = s.queueSave()
		}
	case domain.UpdatePeriod:
		if s.state.Period != prev.Period {
			save = s.queueSave()
		}
	case domain.Submit:
		if a.Status.IsLoading() {
			s.startSubmission()
		}
	}
	s.mu.Unlock()

	if save != nil {
		s.persist(ctx, *save)
	}
}

// prepare fills in what the caller left to the store: reference dates and
// the persisted selection. It runs outside the lock.
func (s *Store) prepare(ctx context.Context, action domain.Action) domain.Action {
	switch a := action.(type) {
	case domain.UpdatePeriod:
		if a.ReferenceDate.IsZero() {
			a.ReferenceDate = s.now()
		}
		return a

	case domain.LoadFromDefaults:
		if a.ReferenceDate.IsZero() {
			a.ReferenceDate = s.now()
		}
		if a.Saved == nil {
			sel, ok, err := s.selections.Load(ctx)
			if err != nil {
				s.logger.Warn("failed to load loan selection", zap.Error(err))
			}
			if ok {
				a.Saved = &sel
			}
		}
		return a
	}
	return action
}

// apply must be called with mu held.
func (s *Store) apply(action domain.Action) {
	s.state = Reduce(s.state, action)
	for sub := range s.subscribers {
		sub.publish(s.state)
	}
}

// queueSave must be called with mu held.
func (s *Store) queueSave() *pendingSave {
	s.saveSeq++
	return &pendingSave{seq: s.saveSeq, sel: s.state.Selection()}
}

// persist writes p unless a newer selection has already been written.
func (s *Store) persist(ctx context.Context, p pendingSave) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if p.seq <= s.savedSeq {
		s.logger.Debug("stale loan selection skipped", zap.Uint64("seq", p.seq))
		return
	}
	s.savedSeq = p.seq

	if err := s.selections.Save(ctx, p.sel); err != nil {
		s.logger.Warn("failed to save loan selection",
			zap.Int("amount", p.sel.Amount),
			zap.Int("period", p.sel.Period),
			zap.Error(err),
		)
	}
}

// startSubmission must be called with mu held.
func (s *Store) startSubmission() {
	if s.inFlight {
		s.logger.Info("submission already in flight, not starting another")
		return
	}
	s.inFlight = true
	s.generation++

	app := domain.NewLoanApplication(s.state)
	gen := s.generation

	s.jobs.Add(1)
	go s.submitApplication(gen, app)
}

func (s *Store) submitApplication(gen uint64, app domain.LoanApplication) {
	defer s.jobs.Done()

	code, err := s.gateway.SubmitLoanApplication(s.ctx, app)
	if s.ctx.Err() != nil {
		return
	}

	switch {
	case errors.Is(err, ErrEncodePayload):
		s.logger.Warn("loan application encoding failed", zap.Error(err))
		s.finish(gen, domain.Failure(MsgEncodeFailed))
		return
	case err != nil:
		s.logger.Warn("loan application submission failed", zap.Error(err))
		s.finish(gen, domain.Failure(err.Error()))
		return
	case code < 200 || code > 299:
		s.logger.Warn("loan application rejected", zap.Int("status", code))
		s.finish(gen, domain.Failure(MsgServerError))
		return
	}

	s.logger.Info("loan application submitted",
		zap.Int("amount", app.Amount),
		zap.Int("period", app.Period),
		zap.Int("status", code),
	)
	s.finish(gen, domain.Success())

	timer := time.NewTimer(s.dismissDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		s.dismiss(gen)
	case <-s.ctx.Done():
	}
}

// finish records the outcome of submission gen unless the store is gone.
func (s *Store) finish(gen uint64, status domain.SubmitStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if gen == s.generation {
		s.inFlight = false
	}
	s.apply(domain.Submit{Status: status})
}

// dismiss clears the success status of submission gen. A newer submission
// owns the status, so a stale dismissal is dropped.
func (s *Store) dismiss(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return
	}
	s.apply(domain.Submit{Status: domain.NoStatus()})
}

// Subscribe returns a channel that yields the current state followed by every
// later state, in order. The channel is closed by the returned cancel func or
// by Close.
func (s *Store) Subscribe() (<-chan domain.LoanState, func()) {
	sub := newSubscriber()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	sub.publish(s.state)
	s.subscribers[sub] = struct{}{}
	s.pumps.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.pumps.Done()
		sub.run()
	}()

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers, sub)
		s.mu.Unlock()
		sub.stop()
	}
	return sub.ch, cancel
}

// Close stops background work. In-flight requests are cancelled, pending
// dismissals are dropped and subscriber channels are closed. Dispatches that
// already reached the repository finish before Close returns, so the
// repository can be released afterwards. It is safe to call more than once.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subscribers
	s.subscribers = nil
	s.mu.Unlock()

	s.cancel()
	s.jobs.Wait()
	s.io.Wait()

	for sub := range subs {
		sub.stop()
	}
	s.pumps.Wait()
}
