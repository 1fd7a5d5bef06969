package application

import (
	"context"
	"expvar"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statValue(name string) int64 {
	if v, ok := stats.Get(name).(*expvar.Int); ok {
		return v.Value()
	}
	return 0
}

func TestMutationsAreCounted(t *testing.T) {
	f := newGoalFixture()
	ctx := context.Background()
	users, created, deleted := statValue(statUsersCreated), statValue(statGoalsCreated), statValue(statGoalsDeleted)

	ann := f.user(t, "Ann", "ann@x.com")
	g, err := f.gs.CreateGoal(ctx, goalInput(ann.ID, "Learn Go"))
	require.NoError(t, err)
	require.NoError(t, f.gs.DeleteGoal(ctx, g.ID, ann.ID))
	assert.Error(t, f.gs.DeleteGoal(ctx, g.ID, ann.ID))

	assert.Equal(t, users+1, statValue(statUsersCreated))
	assert.Equal(t, created+1, statValue(statGoalsCreated))
	assert.Equal(t, deleted+1, statValue(statGoalsDeleted))
}
