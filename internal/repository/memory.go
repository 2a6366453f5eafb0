package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/UnknownOlympus/odyssey/internal/models"
)

// DefaultMemoryPlans caps a Memory repository created by NewMemory.
const DefaultMemoryPlans = 1000

// Memory is an in-process Interface used when no database is configured.
// Plans are lost on restart. Once the limit is reached the oldest plan is dropped,
// and failure counters are bounded by the same limit.
type Memory struct {
	mu       sync.RWMutex
	limit    int
	plans    map[string]models.RoutePlan
	order    []string
	failures map[string]int
}

// NewMemory returns an empty Memory repository keeping up to DefaultMemoryPlans plans.
func NewMemory() *Memory {
	return NewMemoryWithLimit(DefaultMemoryPlans)
}

// NewMemoryWithLimit returns an empty Memory repository keeping up to limit plans.
// A non-positive limit falls back to DefaultMemoryPlans.
func NewMemoryWithLimit(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultMemoryPlans
	}

	return &Memory{
		limit:    limit,
		plans:    make(map[string]models.RoutePlan),
		failures: make(map[string]int),
	}
}

func (m *Memory) SaveRoutePlan(_ context.Context, plan models.RoutePlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan.Stops = slices.Clone(plan.Stops)
	plan.Unresolved = slices.Clone(plan.Unresolved)
	if _, ok := m.plans[plan.ID]; !ok {
		m.order = append(m.order, plan.ID)
	}
	m.plans[plan.ID] = plan

	for len(m.order) > m.limit {
		delete(m.plans, m.order[0])
		m.order = slices.Delete(m.order, 0, 1)
	}

	return nil
}

func (m *Memory) GetRoutePlan(_ context.Context, id string) (*models.RoutePlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	plan.Stops = slices.Clone(plan.Stops)
	plan.Unresolved = slices.Clone(plan.Unresolved)

	return &plan, nil
}

func (m *Memory) RecordGeocodingFailure(_ context.Context, address, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.failures[address]; !ok && len(m.failures) >= m.limit {
		for victim := range m.failures {
			delete(m.failures, victim)
			break
		}
	}
	m.failures[address]++

	return nil
}

// Failures returns how many times address failed to geocode.
func (m *Memory) Failures(address string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.failures[address]
}

// Len reports how many plans are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.plans)
}
