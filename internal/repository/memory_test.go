package repository_test

import (
	"fmt"
	"testing"

	"github.com/UnknownOlympus/odyssey/internal/models"
	"github.com/UnknownOlympus/odyssey/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	repo := repository.NewMemory()

	_, err := repo.GetRoutePlan(ctx, planID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	plan := samplePlan()
	require.NoError(t, repo.SaveRoutePlan(ctx, plan))

	plan.Stops[0] = models.Stop{ID: 99}

	got, err := repo.GetRoutePlan(ctx, planID)
	require.NoError(t, err)
	expected := samplePlan()
	assert.Equal(t, &expected, got, "stored plan must not alias the caller's slices")

	require.NoError(t, repo.RecordGeocodingFailure(ctx, "Nowhere", "a"))
	require.NoError(t, repo.RecordGeocodingFailure(ctx, "Nowhere", "b"))
	assert.Equal(t, 2, repo.Failures("Nowhere"))
	assert.Zero(t, repo.Failures("Kyiv"))
}

func TestMemory_Limit(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	repo := repository.NewMemoryWithLimit(2)

	for _, id := range []string{"plan-a", "plan-b", "plan-c"} {
		require.NoError(t, repo.SaveRoutePlan(ctx, models.RoutePlan{ID: id}))
	}

	assert.Equal(t, 2, repo.Len())
	_, err := repo.GetRoutePlan(ctx, "plan-a")
	require.ErrorIs(t, err, repository.ErrNotFound)
	for _, id := range []string{"plan-b", "plan-c"} {
		got, err := repo.GetRoutePlan(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	}
}

func TestMemory_ResaveKeepsOrder(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	repo := repository.NewMemoryWithLimit(2)

	require.NoError(t, repo.SaveRoutePlan(ctx, models.RoutePlan{ID: "plan-a"}))
	require.NoError(t, repo.SaveRoutePlan(ctx, models.RoutePlan{ID: "plan-b"}))
	require.NoError(t, repo.SaveRoutePlan(ctx, models.RoutePlan{ID: "plan-a", AnchorID: 7}))
	assert.Equal(t, 2, repo.Len())

	got, err := repo.GetRoutePlan(ctx, "plan-a")
	require.NoError(t, err)
	assert.Equal(t, 7, got.AnchorID)

	require.NoError(t, repo.SaveRoutePlan(ctx, models.RoutePlan{ID: "plan-c"}))
	_, err = repo.GetRoutePlan(ctx, "plan-a")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetRoutePlan(ctx, "plan-b")
	require.NoError(t, err)
}

func TestMemory_FailuresBounded(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	repo := repository.NewMemoryWithLimit(3)

	for i := range 100 {
		require.NoError(t, repo.RecordGeocodingFailure(ctx, fmt.Sprintf("street %d", i), "not found"))
	}
	require.NoError(t, repo.RecordGeocodingFailure(ctx, "street 99", "not found"))

	total := 0
	for i := range 100 {
		total += repo.Failures(fmt.Sprintf("street %d", i))
	}
	assert.LessOrEqual(t, total, 4)
	assert.Equal(t, 2, repo.Failures("street 99"))
}

func TestNewMemory_DefaultLimit(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	repo := repository.NewMemoryWithLimit(0)

	for i := range repository.DefaultMemoryPlans + 5 {
		require.NoError(t, repo.SaveRoutePlan(ctx, models.RoutePlan{ID: fmt.Sprintf("plan-%d", i)}))
	}

	assert.Equal(t, repository.DefaultMemoryPlans, repo.Len())
}
