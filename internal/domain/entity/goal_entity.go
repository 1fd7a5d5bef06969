package entity

import (
	"time"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
)

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not_started"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusCancelled  GoalStatus = "cancelled"
)

// GoalStatuses lists every accepted status in lifecycle order.
var GoalStatuses = []GoalStatus{
	GoalStatusNotStarted,
	GoalStatusInProgress,
	GoalStatusCompleted,
	GoalStatusCancelled,
}

const goalStatusMessage = "must be one of: not_started, in_progress, completed, cancelled"

func ParseGoalStatus(raw string) (GoalStatus, error) {
	s := GoalStatus(raw)
	if !s.IsValid() {
		return "", apperror.Validation(goalStatusMessage, "status")
	}
	return s, nil
}

// IsValid reports whether s is one of GoalStatuses. A GoalStatus converted
// straight from a string is not checked until this is called.
func (s GoalStatus) IsValid() bool {
	for _, known := range GoalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s GoalStatus) String() string { return string(s) }

// IsTerminal reports whether no further progress is expected.
func (s GoalStatus) IsTerminal() bool {
	return s == GoalStatusCompleted || s == GoalStatusCancelled
}

// Goal belongs to exactly one user for its whole life.
type Goal struct {
	ID          GoalID
	UserID      UserID
	Title       GoalTitle
	Description GoalDescription
	Status      GoalStatus
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether the goal belongs to the given user.
func (g *Goal) OwnedBy(id UserID) bool {
	return g.UserID == id
}

type CreateGoal struct {
	UserID      UserID
	Title       GoalTitle
	Description GoalDescription
	DueDate     *time.Time
}

// UpdateGoal carries a partial update; only fields with Set == true are written.
type UpdateGoal struct {
	Title       Optional[GoalTitle]
	Description Optional[GoalDescription]
	Status      Optional[GoalStatus]
	DueDate     Optional[*time.Time]
}

// Empty reports whether no field is present.
func (u UpdateGoal) Empty() bool {
	return !u.Title.Set && !u.Description.Set && !u.Status.Set && !u.DueDate.Set
}

// Validate rejects present values that did not come from their constructors.
func (u UpdateGoal) Validate() error {
	if u.Title.Set && u.Title.Value.IsZero() {
		return apperror.Validation("is required", "title")
	}
	if u.Description.Set && u.Description.Value.IsZero() {
		return apperror.Validation("is required", "description")
	}
	if u.Status.Set && !u.Status.Value.IsValid() {
		return apperror.Validation(goalStatusMessage, "status")
	}
	return nil
}

// Optional is a presence-aware value: a present zero value still counts.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}
