package repository

import (
	"context"

	"github.com/oksasatya/growth-partner/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence.
//
// FindByUserID returns goals newest first; goals created at the same instant
// keep their insertion order. Update writes only the present fields of in,
// always refreshes updated_at and returns the re-read goal. Delete of a
// missing id is not an error.
type GoalRepository interface {
	Create(ctx context.Context, in entity.CreateGoal) (*entity.Goal, error)
	FindByID(ctx context.Context, id entity.GoalID) (*entity.Goal, error)
	FindByUserID(ctx context.Context, userID entity.UserID) ([]*entity.Goal, error)
	Update(ctx context.Context, id entity.GoalID, in entity.UpdateGoal) (*entity.Goal, error)
	Delete(ctx context.Context, id entity.GoalID) error
}
