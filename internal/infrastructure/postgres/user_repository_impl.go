package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/internal/domain/repository"
	"github.com/oksasatya/growth-partner/pkg/helpers"
)

const uniqueViolation = "23505"

type userRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (row userRow) toEntity() (*entity.User, error) {
	id, err := entity.NewUserID(row.ID)
	if err != nil {
		return nil, err
	}
	name, err := entity.NewUserName(row.Name)
	if err != nil {
		return nil, err
	}
	email, err := entity.NewUserEmail(row.Email)
	if err != nil {
		return nil, err
	}
	createdAt, err := helpers.ParseISO(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := helpers.ParseISO(row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.User{ID: id, Name: name, Email: email, CreatedAt: createdAt, UpdatedAt: updatedAt}, nil
}

type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: helpers.NowMillis}
}

func (r *UserRepository) Create(ctx context.Context, in entity.CreateUser) (*entity.User, error) {
	if in.Name.IsZero() || in.Email.IsZero() {
		return nil, apperror.Validation("name and email are required", "")
	}
	now := r.now()
	u := &entity.User{
		ID:        entity.GenerateUserID(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID.String(), u.Name.String(), u.Email.String(), helpers.FormatISO(u.CreatedAt), helpers.FormatISO(u.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("%w: %w", repository.ErrDuplicateEmail, err)
		}
		return nil, apperror.Repository("users.create", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	return r.findOne(ctx, "users.find_by_id", `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id.String())
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "users.find_by_email", `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) findOne(ctx context.Context, op, query, arg string) (*entity.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Repository(op, err)
	}
	u, err := row.toEntity()
	if err != nil {
		return nil, apperror.Unexpected(fmt.Errorf("decode user row %q: %w", row.ID, err))
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ repository.UserRepository = (*UserRepository)(nil)
