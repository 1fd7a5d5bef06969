package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/growth-partner/internal/domain/entity"
)

// ErrDuplicateEmail is the cause carried by a Repository error when an insert
// hits the unique email constraint.
var ErrDuplicateEmail = errors.New("duplicate email")

// UserRepository defines the interface for user-related database operations.
// A lookup miss is (nil, nil); every failure is an *apperror.Error.
type UserRepository interface {
	Create(ctx context.Context, in entity.CreateUser) (*entity.User, error)
	FindByID(ctx context.Context, id entity.UserID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
