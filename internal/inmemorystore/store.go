package inmemorystore

import (
	"context"
	"slices"
	"sync"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/runstore"
)

// Store is an in-memory implementation of runstore.Store.
type Store struct {
	states   sync.Map // platform -> runstore.Status
	outcomes sync.Map // platform -> runstore.Outcome
	errors   sync.Map // platform -> error
}

// New creates a new, empty in-memory run store.
func New() runstore.Store {
	return &Store{}
}

// SetStatus updates the status of a platform.
func (s *Store) SetStatus(ctx context.Context, platform string, status runstore.Status) error {
	s.states.Store(platform, status)
	return nil
}

// GetStatus retrieves the status of a platform.
func (s *Store) GetStatus(ctx context.Context, platform string) (runstore.Status, error) {
	status, ok := s.states.Load(platform)
	if !ok {
		return runstore.StatusPending, nil
	}
	return status.(runstore.Status), nil
}

// SetOutcome records the result of a resolved platform.
func (s *Store) SetOutcome(ctx context.Context, platform string, outcome runstore.Outcome) error {
	s.outcomes.Store(platform, outcome)
	return nil
}

// GetOutcome retrieves the result of a resolved platform.
func (s *Store) GetOutcome(ctx context.Context, platform string) (runstore.Outcome, bool, error) {
	outcome, ok := s.outcomes.Load(platform)
	if !ok {
		return runstore.Outcome{}, false, nil
	}
	return outcome.(runstore.Outcome), true, nil
}

// SetError records the failure of a platform.
func (s *Store) SetError(ctx context.Context, platform string, runErr error) error {
	s.errors.Store(platform, runErr)
	return nil
}

// GetError retrieves the failure of a platform.
func (s *Store) GetError(ctx context.Context, platform string) (error, error) {
	err, ok := s.errors.Load(platform)
	if !ok {
		return nil, nil
	}
	return err.(error), nil
}

// Platforms returns every platform with a status, sorted.
func (s *Store) Platforms(ctx context.Context) ([]string, error) {
	var platforms []string
	s.states.Range(func(key, _ any) bool {
		platforms = append(platforms, key.(string))
		return true
	})
	slices.Sort(platforms)
	return platforms, nil
}
