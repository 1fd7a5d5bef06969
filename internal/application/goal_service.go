package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	repo "github.com/oksasatya/growth-partner/internal/domain/repository"
	"github.com/oksasatya/growth-partner/pkg/mailer"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// GoalService holds the goal use cases. Publisher, Index and Snapshots are
// optional; when set they receive fire-and-forget updates after every
// successful mutation, and their failures are only logged.
type GoalService struct {
	Users     repo.UserRepository
	Goals     repo.GoalRepository
	Publisher JobPublisher
	Index     GoalIndex
	Snapshots *SnapshotService
	Logger    *logrus.Logger
	Now       func() time.Time
}

func NewGoalService(users repo.UserRepository, goals repo.GoalRepository, logger *logrus.Logger) *GoalService {
	return &GoalService{Users: users, Goals: goals, Logger: logger, Now: time.Now}
}

// CreateGoal creates a goal for an existing user. The new goal always starts
// as not_started.
func (s *GoalService) CreateGoal(ctx context.Context, in entity.CreateGoal) (*entity.Goal, error) {
	owner, err := s.requireUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	g, err := s.Goals.Create(ctx, in)
	if err != nil {
		return nil, apperror.Wrap(err)
	}

	count(statGoalsCreated)
	s.reindex(ctx, g)
	s.markDirty(ctx, g.UserID)
	if job, ok := DueSoonNotification(owner, g, s.now()); ok {
		s.publish(ctx, job)
	}
	return g, nil
}

// GetGoal returns the goal if it exists and belongs to requester. A missing
// goal is reported as NotFound whoever asks.
func (s *GoalService) GetGoal(ctx context.Context, id entity.GoalID, requester entity.UserID) (*entity.Goal, error) {
	return s.authorize(ctx, id, requester, "access")
}

// UpdateGoal applies a partial update. Any status may be set; transitions are
// not restricted.
func (s *GoalService) UpdateGoal(ctx context.Context, id entity.GoalID, requester entity.UserID, in entity.UpdateGoal) (*entity.Goal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	current, err := s.authorize(ctx, id, requester, "update")
	if err != nil {
		return nil, err
	}

	g, err := s.Goals.Update(ctx, id, in)
	if err != nil {
		return nil, apperror.Wrap(err)
	}

	count(statGoalsUpdated)
	s.reindex(ctx, g)
	s.markDirty(ctx, g.UserID)
	s.notifyUpdate(ctx, current, g, in)
	return g, nil
}

// DeleteGoal removes the goal. Deleting twice reports NotFound the second
// time because the ownership check runs first.
func (s *GoalService) DeleteGoal(ctx context.Context, id entity.GoalID, requester entity.UserID) error {
	g, err := s.authorize(ctx, id, requester, "delete")
	if err != nil {
		return err
	}
	if err := s.Goals.Delete(ctx, id); err != nil {
		return apperror.Wrap(err)
	}
	count(statGoalsDeleted)

	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.warn(err, "goal index delete failed", logrus.Fields{"goal_id": id.String()})
		}
	}
	s.markDirty(ctx, g.UserID)
	return nil
}

// GetUserGoals lists a user's goals, newest first.
func (s *GoalService) GetUserGoals(ctx context.Context, userID entity.UserID) ([]*entity.Goal, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	goals, err := s.Goals.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	return goals, nil
}

// SearchGoals runs a full-text query over the user's goals. Without an index
// configured it returns no hits.
func (s *GoalService) SearchGoals(ctx context.Context, userID entity.UserID, q string, size int) ([]GoalHit, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation("is required", "q")
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	if s.Index == nil {
		return []GoalHit{}, nil
	}
	hits, err := s.Index.Search(ctx, userID, q, size)
	if err != nil {
		return nil, apperror.Repository("goal_index.search", err)
	}
	return hits, nil
}

// SendMotivation enqueues a progress summary for the user.
func (s *GoalService) SendMotivation(ctx context.Context, userID entity.UserID) error {
	owner, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}
	if s.Publisher == nil {
		return apperror.Unexpected(errors.New("notifications are not configured"))
	}
	goals, err := s.Goals.FindByUserID(ctx, userID)
	if err != nil {
		return apperror.Wrap(err)
	}
	if err := s.Publisher.PublishJSON(ctx, MotivationalNotification(owner, goals)); err != nil {
		return apperror.Unexpected(err)
	}
	count(statNotificationsQueued)
	return nil
}

func (s *GoalService) requireUser(ctx context.Context, id entity.UserID) (*entity.User, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if u == nil {
		return nil, apperror.NotFound("user", id.String())
	}
	return u, nil
}

// authorize checks existence before ownership.
func (s *GoalService) authorize(ctx context.Context, id entity.GoalID, requester entity.UserID, action string) (*entity.Goal, error) {
	g, err := s.Goals.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if g == nil {
		return nil, apperror.NotFound("goal", id.String())
	}
	if !g.OwnedBy(requester) {
		return nil, apperror.Unauthorized("not authorized to " + action + " this goal")
	}
	return g, nil
}

func (s *GoalService) notifyUpdate(ctx context.Context, before, after *entity.Goal, in entity.UpdateGoal) {
	if s.Publisher == nil {
		return
	}
	statusChanged := in.Status.Set && before.Status != after.Status
	if !statusChanged && !in.DueDate.Set {
		return
	}
	owner, err := s.Users.FindByID(ctx, after.UserID)
	if err == nil && owner == nil {
		err = apperror.NotFound("user", after.UserID.String())
	}
	if err != nil {
		s.warn(err, "goal owner lookup for notification failed", logrus.Fields{"goal_id": after.ID.String()})
		return
	}
	if statusChanged {
		s.publish(ctx, StatusUpdatedNotification(owner, after))
	}
	if in.DueDate.Set {
		if job, ok := DueSoonNotification(owner, after, s.now()); ok {
			s.publish(ctx, job)
		}
	}
}

func (s *GoalService) publish(ctx context.Context, job mailer.NotificationJob) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.warn(err, "publish notification failed", logrus.Fields{"type": job.Type})
		return
	}
	count(statNotificationsQueued)
}

func (s *GoalService) reindex(ctx context.Context, g *entity.Goal) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, g); err != nil {
		s.warn(err, "goal index failed", logrus.Fields{"goal_id": g.ID.String()})
	}
}

func (s *GoalService) markDirty(ctx context.Context, userID entity.UserID) {
	if s.Snapshots == nil {
		return
	}
	if err := s.Snapshots.MarkDirty(ctx, userID); err != nil {
		s.warn(err, "snapshot mark dirty failed", logrus.Fields{"user_id": userID.String()})
	}
}

func (s *GoalService) warn(err error, msg string, fields logrus.Fields) {
	count(statSideEffectFailures)
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(fields).Warn(msg)
}

func (s *GoalService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
