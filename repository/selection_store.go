package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"loan-calculator/domain"
)

const (
	KeyLoanAmount = "loanAmount"
	KeyLoanPeriod = "loanPeriod"
)

var ErrInvalidSelection = errors.New("invalid persisted loan selection")

// LoanSelectionRepository loads and saves the last chosen amount and period.
type LoanSelectionRepository interface {
	// Load returns ok=false unless both values are present.
	Load(ctx context.Context) (sel domain.LoanSelection, ok bool, err error)
	Save(ctx context.Context, sel domain.LoanSelection) error
}

// SelectionStore implements LoanSelectionRepository on any CacheRepository.
type SelectionStore struct {
	cache CacheRepository
}

func NewSelectionStore(cache CacheRepository) *SelectionStore {
	return &SelectionStore{cache: cache}
}

func (s *SelectionStore) Load(ctx context.Context) (domain.LoanSelection, bool, error) {
	amount, ok, err := s.loadInt(ctx, KeyLoanAmount)
	if err != nil || !ok {
		return domain.LoanSelection{}, false, err
	}
	period, ok, err := s.loadInt(ctx, KeyLoanPeriod)
	if err != nil || !ok {
		return domain.LoanSelection{}, false, err
	}
	return domain.LoanSelection{Amount: amount, Period: period}, true, nil
}

func (s *SelectionStore) loadInt(ctx context.Context, key string) (int, bool, error) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return 0, false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s=%q", ErrInvalidSelection, key, raw)
	}
	return v, true, nil
}

func (s *SelectionStore) Save(ctx context.Context, sel domain.LoanSelection) error {
	if err := s.cache.Set(ctx, KeyLoanAmount, strconv.Itoa(sel.Amount)); err != nil {
		return fmt.Errorf("set %s: %w", KeyLoanAmount, err)
	}
	if err := s.cache.Set(ctx, KeyLoanPeriod, strconv.Itoa(sel.Period)); err != nil {
		return fmt.Errorf("set %s: %w", KeyLoanPeriod, err)
	}
	return nil
}
