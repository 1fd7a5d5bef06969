package application

import (
	"context"

	"github.com/oksasatya/growth-partner/internal/domain/entity"
)

// JobPublisher enqueues a JSON job for asynchronous delivery.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// GoalIndex is a full-text index over goal titles and descriptions.
type GoalIndex interface {
	Index(ctx context.Context, g *entity.Goal) error
	Delete(ctx context.Context, id entity.GoalID) error
	Search(ctx context.Context, userID entity.UserID, q string, size int) ([]GoalHit, error)
}

// GoalHit is one search result.
type GoalHit struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Score       float64 `json:"score"`
}

// ObjectStore keeps opaque blobs by key. Get returns an error matching
// helpers.ErrObjectNotFound for a missing key.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// DirtyTracker remembers which users changed since their last snapshot.
type DirtyTracker interface {
	Mark(ctx context.Context, userID string) error
	Pop(ctx context.Context, n int) ([]string, error)
}
