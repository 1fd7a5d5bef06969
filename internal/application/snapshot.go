package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	repo "github.com/oksasatya/growth-partner/internal/domain/repository"
	"github.com/oksasatya/growth-partner/pkg/helpers"
)

// Snapshot is an offline copy of a user and their goals.
type Snapshot struct {
	User     SnapshotUser   `json:"user"`
	Goals    []SnapshotGoal `json:"goals"`
	SyncedAt time.Time      `json:"synced_at"`
}

type SnapshotUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SnapshotGoal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SnapshotService writes per-user snapshots to an object store. Users are
// marked dirty on every goal mutation and synced later by AutoSync.
type SnapshotService struct {
	Users repo.UserRepository
	Goals repo.GoalRepository
	Store ObjectStore
	Dirty DirtyTracker
	Now   func() time.Time
}

func NewSnapshotService(users repo.UserRepository, goals repo.GoalRepository, store ObjectStore, dirty DirtyTracker) *SnapshotService {
	return &SnapshotService{Users: users, Goals: goals, Store: store, Dirty: dirty, Now: time.Now}
}

func snapshotKey(userID string) string {
	return "snapshots/" + userID + ".json"
}

// Location returns where the user's snapshot lives, or "" when the store
// cannot tell.
func (s *SnapshotService) Location(userID entity.UserID) string {
	if l, ok := s.Store.(interface{ URL(key string) string }); ok {
		return l.URL(snapshotKey(userID.String()))
	}
	return ""
}

func (s *SnapshotService) MarkDirty(ctx context.Context, userID entity.UserID) error {
	if s.Dirty == nil {
		return nil
	}
	return s.Dirty.Mark(ctx, userID.String())
}

// Sync writes the current state of the user and their goals.
func (s *SnapshotService) Sync(ctx context.Context, userID entity.UserID) (*Snapshot, error) {
	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if u == nil {
		return nil, apperror.NotFound("user", userID.String())
	}
	goals, err := s.Goals.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err)
	}

	snap := buildSnapshot(u, goals, s.now())
	b, err := json.Marshal(snap)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if err := s.Store.Put(ctx, snapshotKey(userID.String()), "application/json", b); err != nil {
		return nil, apperror.Repository("snapshots.put", err)
	}
	return snap, nil
}

// Load returns the last written snapshot of the user.
func (s *SnapshotService) Load(ctx context.Context, userID entity.UserID) (*Snapshot, error) {
	b, err := s.Store.Get(ctx, snapshotKey(userID.String()))
	if err != nil {
		if errors.Is(err, helpers.ErrObjectNotFound) {
			return nil, apperror.NotFound("snapshot", userID.String())
		}
		return nil, apperror.Repository("snapshots.get", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, apperror.Unexpected(err)
	}
	return &snap, nil
}

func buildSnapshot(u *entity.User, goals []*entity.Goal, now time.Time) *Snapshot {
	snap := &Snapshot{
		User: SnapshotUser{
			ID:        u.ID.String(),
			Name:      u.Name.String(),
			Email:     u.Email.String(),
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		Goals:    make([]SnapshotGoal, 0, len(goals)),
		SyncedAt: now.UTC(),
	}
	for _, g := range goals {
		snap.Goals = append(snap.Goals, SnapshotGoal{
			ID:          g.ID.String(),
			UserID:      g.UserID.String(),
			Title:       g.Title.String(),
			Description: g.Description.String(),
			Status:      string(g.Status),
			DueDate:     g.DueDate,
			CreatedAt:   g.CreatedAt,
			UpdatedAt:   g.UpdatedAt,
		})
	}
	return snap
}

func (s *SnapshotService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
