package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/internal/domain/repository"
	"github.com/oksasatya/growth-partner/pkg/helpers"
)

var errNotFoundAfterUpdate = errors.New("not found after update")

const goalColumns = `id, user_id, title, description, status, due_date, created_at, updated_at`

type goalRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	DueDate     sql.NullString `db:"due_date"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

func (row goalRow) toEntity() (*entity.Goal, error) {
	id, err := entity.NewGoalID(row.ID)
	if err != nil {
		return nil, err
	}
	userID, err := entity.NewUserID(row.UserID)
	if err != nil {
		return nil, err
	}
	title, err := entity.NewGoalTitle(row.Title)
	if err != nil {
		return nil, err
	}
	desc, err := entity.NewGoalDescription(row.Description)
	if err != nil {
		return nil, err
	}
	status, err := entity.ParseGoalStatus(row.Status)
	if err != nil {
		return nil, err
	}
	var due *time.Time
	if row.DueDate.Valid && row.DueDate.String != "" {
		t, err := helpers.ParseISO(row.DueDate.String)
		if err != nil {
			return nil, err
		}
		due = &t
	}
	createdAt, err := helpers.ParseISO(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := helpers.ParseISO(row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Goal{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: desc,
		Status:      status,
		DueDate:     due,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func nullableISO(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: helpers.FormatISO(*t), Valid: true}
}

type GoalRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewGoalRepository(db *sqlx.DB) *GoalRepository {
	return &GoalRepository{db: db, now: helpers.NowMillis}
}

func (r *GoalRepository) Create(ctx context.Context, in entity.CreateGoal) (*entity.Goal, error) {
	if in.UserID.IsZero() || in.Title.IsZero() || in.Description.IsZero() {
		return nil, apperror.Validation("user_id, title and description are required", "")
	}
	now := r.now()
	g := &entity.Goal{
		ID:          entity.GenerateGoalID(),
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.GoalStatusNotStarted,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, g.ID.String(), g.UserID.String(), g.Title.String(), g.Description.String(), string(g.Status),
		nullableISO(g.DueDate), helpers.FormatISO(g.CreatedAt), helpers.FormatISO(g.UpdatedAt))
	if err != nil {
		return nil, apperror.Repository("goals.create", err)
	}
	return g, nil
}

func (r *GoalRepository) FindByID(ctx context.Context, id entity.GoalID) (*entity.Goal, error) {
	g, err := r.get(ctx, id)
	if err != nil {
		return nil, classify("goals.find_by_id", err)
	}
	return g, nil
}

func (r *GoalRepository) FindByUserID(ctx context.Context, userID entity.UserID) ([]*entity.Goal, error) {
	var rows []goalRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC, seq ASC
	`, userID.String())
	if err != nil {
		return nil, apperror.Repository("goals.find_by_user_id", err)
	}
	goals := make([]*entity.Goal, 0, len(rows))
	for _, row := range rows {
		g, err := row.toEntity()
		if err != nil {
			return nil, apperror.Unexpected(fmt.Errorf("decode goal row %q: %w", row.ID, err))
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (r *GoalRepository) Update(ctx context.Context, id entity.GoalID, in entity.UpdateGoal) (*entity.Goal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if in.Title.Set {
		set("title", in.Title.Value.String())
	}
	if in.Description.Set {
		set("description", in.Description.Value.String())
	}
	if in.Status.Set {
		set("status", string(in.Status.Value))
	}
	if in.DueDate.Set {
		set("due_date", nullableISO(in.DueDate.Value))
	}
	set("updated_at", helpers.FormatISO(r.now()))
	args = append(args, id.String())

	query := fmt.Sprintf("UPDATE goals SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, apperror.Repository("goals.update", err)
	}

	g, err := r.get(ctx, id)
	if err != nil {
		return nil, classify("goals.update", err)
	}
	if g == nil {
		return nil, apperror.Repository("goals.update", errNotFoundAfterUpdate)
	}
	return g, nil
}

func (r *GoalRepository) Delete(ctx context.Context, id entity.GoalID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id.String()); err != nil {
		return apperror.Repository("goals.delete", err)
	}
	return nil
}

// get returns (nil, nil) on a miss, a decodeError for a corrupt row and the
// raw driver error otherwise.
func (r *GoalRepository) get(ctx context.Context, id entity.GoalID) (*entity.Goal, error) {
	var row goalRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE id = $1
	`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	g, err := row.toEntity()
	if err != nil {
		return nil, decodeError{id: row.ID, err: err}
	}
	return g, nil
}

type decodeError struct {
	id  string
	err error
}

func (e decodeError) Error() string { return fmt.Sprintf("decode goal row %q: %v", e.id, e.err) }
func (e decodeError) Unwrap() error { return e.err }

func classify(op string, err error) error {
	var de decodeError
	if errors.As(err, &de) {
		return apperror.Unexpected(de)
	}
	return apperror.Repository(op, err)
}

var _ repository.GoalRepository = (*GoalRepository)(nil)
