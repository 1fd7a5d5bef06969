package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	repo "github.com/oksasatya/growth-partner/internal/domain/repository"
)

type UserService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

// CreateUser registers a new user. The email must not belong to anyone yet.
func (s *UserService) CreateUser(ctx context.Context, in entity.CreateUser) (*entity.User, error) {
	existing, err := s.Users.FindByEmail(ctx, in.Email.String())
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if existing != nil {
		return nil, apperror.EmailAlreadyExists(in.Email.String())
	}

	u, err := s.Users.Create(ctx, in)
	if err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, apperror.EmailAlreadyExists(in.Email.String())
		}
		return nil, apperror.Wrap(err)
	}
	count(statUsersCreated)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID.String()).Info("user created")
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id entity.UserID) (*entity.User, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if u == nil {
		return nil, apperror.NotFound("user", id.String())
	}
	return u, nil
}
