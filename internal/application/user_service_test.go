package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
)

func newUserInput(name, email string) entity.CreateUser {
	return entity.CreateUser{Name: must(entity.NewUserName(name)), Email: must(entity.NewUserEmail(email))}
}

func TestUserService_CreateAndGet(t *testing.T) {
	users := newFakeUsers()
	svc := NewUserService(users, nil)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, newUserInput("Ann", "ann@x.com"))
	require.NoError(t, err)
	assert.False(t, u.ID.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestUserService_CreateDuplicateEmailDoesNotWrite(t *testing.T) {
	users := newFakeUsers()
	svc := NewUserService(users, nil)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, newUserInput("Ann", "ann@x.com"))
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, newUserInput("Other Ann", "ann@x.com"))
	assert.True(t, apperror.IsEmailAlreadyExists(err))
	assert.Equal(t, 1, users.creates)
	assert.Len(t, users.byID, 1)
}

func TestUserService_CreateLosesRace(t *testing.T) {
	users := newFakeUsers()
	users.raceDupe = true
	svc := NewUserService(users, nil)

	_, err := svc.CreateUser(context.Background(), newUserInput("Ann", "ann@x.com"))
	assert.True(t, apperror.IsEmailAlreadyExists(err))
}

func TestUserService_GetMissing(t *testing.T) {
	svc := NewUserService(newFakeUsers(), nil)

	_, err := svc.GetUser(context.Background(), must(entity.NewUserID("nope")))
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, ae.Kind)
	assert.Equal(t, "user", ae.Entity)
}

func TestUserService_RepositoryFailurePassesThrough(t *testing.T) {
	users := newFakeUsers()
	users.findErr = apperror.Repository("users.find_by_email", errors.New("down"))
	svc := NewUserService(users, nil)

	_, err := svc.CreateUser(context.Background(), newUserInput("Ann", "ann@x.com"))
	assert.True(t, apperror.IsRepository(err))

	users.findErr = errors.New("raw driver error")
	_, err = svc.GetUser(context.Background(), must(entity.NewUserID("u1")))
	assert.Equal(t, apperror.KindUnexpected, apperror.KindOf(err))
}
