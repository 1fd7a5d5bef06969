package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
)

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	ae, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T", err)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
	assert.Equal(t, field, ae.Field)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func TestNewUserName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"empty", "", true},
		{"one char", "A", false},
		{"fifty chars", strings.Repeat("a", 50), false},
		{"fifty one chars", strings.Repeat("a", 51), true},
		{"multibyte counted as runes", strings.Repeat("é", 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewUserName(tt.in)
			if tt.wantErr {
				requireValidation(t, err, "name")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, n.String())
		})
	}
}

func TestNewUserEmail(t *testing.T) {
	valid := []string{"a@b.co", "ann.lee+goals@example.com", "x_y%z@sub.domain.org"}
	for _, in := range valid {
		e, err := NewUserEmail(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, e.String())
	}

	invalid := []string{"", "ann", "ann@", "@example.com", "ann@example", "ann@example.c", "ann example@x.com"}
	for _, in := range invalid {
		_, err := NewUserEmail(in)
		requireValidation(t, err, "email")
	}
}

func TestNewGoalTitle(t *testing.T) {
	_, err := NewGoalTitle("")
	requireValidation(t, err, "title")

	_, err = NewGoalTitle(strings.Repeat("t", 101))
	requireValidation(t, err, "title")

	title, err := NewGoalTitle(strings.Repeat("t", 100))
	require.NoError(t, err)
	assert.Len(t, title.String(), 100)
}

func TestNewGoalDescription(t *testing.T) {
	d, err := NewGoalDescription("")
	require.NoError(t, err)
	assert.False(t, d.IsZero(), "a constructed empty description is not the zero value")
	assert.Equal(t, "", d.String())

	_, err = NewGoalDescription(strings.Repeat("d", 1000))
	require.NoError(t, err)

	_, err = NewGoalDescription(strings.Repeat("d", 1001))
	requireValidation(t, err, "description")

	assert.True(t, GoalDescription{}.IsZero())
}

func TestNewIDs(t *testing.T) {
	_, err := NewUserID("   ")
	requireValidation(t, err, "user_id")

	_, err = NewGoalID("")
	requireValidation(t, err, "goal_id")

	_, err = NewUserID(strings.Repeat("x", MaxIDLength+1))
	requireValidation(t, err, "user_id")

	id, err := NewGoalID("goal-1")
	require.NoError(t, err)
	assert.Equal(t, "goal-1", id.String())

	a, b := GenerateUserID(), GenerateUserID()
	assert.NotEqual(t, a, b)
	assert.False(t, GenerateGoalID().IsZero())
}

func TestParseGoalStatus(t *testing.T) {
	for _, s := range GoalStatuses {
		got, err := ParseGoalStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseGoalStatus("done")
	requireValidation(t, err, "status")

	assert.True(t, GoalStatusInProgress.IsValid())
	assert.False(t, GoalStatus("bogus").IsValid())
	assert.False(t, GoalStatus("").IsValid())

	assert.True(t, GoalStatusCompleted.IsTerminal())
	assert.True(t, GoalStatusCancelled.IsTerminal())
	assert.False(t, GoalStatusInProgress.IsTerminal())
}

func TestUpdateGoalEmpty(t *testing.T) {
	assert.True(t, UpdateGoal{}.Empty())

	desc, err := NewGoalDescription("")
	require.NoError(t, err)
	u := UpdateGoal{Description: Some(desc)}
	assert.False(t, u.Empty())
	assert.True(t, u.Description.Set)
}

func TestUpdateGoalValidate(t *testing.T) {
	require.NoError(t, UpdateGoal{}.Validate())
	require.NoError(t, UpdateGoal{
		Title:       Some(must(NewGoalTitle("Learn Go"))),
		Description: Some(must(NewGoalDescription(""))),
		Status:      Some(GoalStatusCancelled),
	}.Validate())

	requireValidation(t, UpdateGoal{Title: Some(GoalTitle{})}.Validate(), "title")
	requireValidation(t, UpdateGoal{Description: Some(GoalDescription{})}.Validate(), "description")
	requireValidation(t, UpdateGoal{Status: Some(GoalStatus("bogus"))}.Validate(), "status")
}

func TestGoalOwnedBy(t *testing.T) {
	owner := GenerateUserID()
	g := &Goal{ID: GenerateGoalID(), UserID: owner}
	assert.True(t, g.OwnedBy(owner))
	assert.False(t, g.OwnedBy(GenerateUserID()))
}
