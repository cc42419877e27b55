package doctor

import (
	"context"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages health checkers and fixers
type Registry struct {
	mu       sync.RWMutex
	checkers []HealthChecker
	fixers   map[string]Fixer
}

// NewRegistry creates a new Registry
func NewRegistry() *Registry {
	return &Registry{
		fixers: make(map[string]Fixer),
	}
}

// RegisterChecker registers a health checker. Results come back in
// registration order.
func (r *Registry) RegisterChecker(checker HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checkers = append(r.checkers, checker)
}

// RegisterFixer registers a fixer
func (r *Registry) RegisterFixer(fixer Fixer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fixers[fixer.ID()] = fixer
}

// Checkers returns all registered checkers
func (r *Registry) Checkers() []HealthChecker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.checkers)
}

// CheckersForCategories returns the checkers in the given categories. An empty
// list selects every checker.
func (r *Registry) CheckersForCategories(categories []Category) []HealthChecker {
	if len(categories) == 0 {
		return r.Checkers()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	selected := []HealthChecker{}

	for _, c := range r.checkers {
		if slices.Contains(categories, c.Category()) {
			selected = append(selected, c)
		}
	}

	return selected
}

// RunAll executes all registered health checkers concurrently
func (r *Registry) RunAll(ctx context.Context) []CheckResult {
	return RunCheckers(ctx, r.Checkers())
}

// RunCategories executes the checkers of the given categories concurrently
func (r *Registry) RunCategories(ctx context.Context, categories []Category) []CheckResult {
	return RunCheckers(ctx, r.CheckersForCategories(categories))
}

// RunCheckers executes the given checkers concurrently. Each result is
// stamped with its checker's category and kept at the checker's index.
func RunCheckers(ctx context.Context, checkers []HealthChecker) []CheckResult {
	results := make([]CheckResult, len(checkers))
	g, gctx := errgroup.WithContext(ctx)

	for i := range checkers {
		checker := checkers[i]

		g.Go(func() error {
			result := checker.Check(gctx)
			result.Category = checker.Category()
			results[i] = result

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// GetFixer retrieves a fixer by ID.
//
//nolint:ireturn // Fixer interface for polymorphism
func (r *Registry) GetFixer(fixID string) (Fixer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fixer, ok := r.fixers[fixID]

	return fixer, ok
}

// GetFixers returns all registered fixers
func (r *Registry) GetFixers() map[string]Fixer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fixers := make(map[string]Fixer, len(r.fixers))
	maps.Copy(fixers, r.fixers)

	return fixers
}

// CheckerCount returns the total number of registered checkers
func (r *Registry) CheckerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.checkers)
}
