package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/pkg/mailer"
)

func sampleUser() *entity.User {
	return &entity.User{
		ID:    must(entity.NewUserID("u1")),
		Name:  must(entity.NewUserName("Ann")),
		Email: must(entity.NewUserEmail("ann@x.com")),
	}
}

func sampleGoal(status entity.GoalStatus, due *time.Time) *entity.Goal {
	return &entity.Goal{
		ID:      must(entity.NewGoalID("g1")),
		UserID:  must(entity.NewUserID("u1")),
		Title:   must(entity.NewGoalTitle("Learn Go")),
		Status:  status,
		DueDate: due,
	}
}

func TestDueSoonNotification(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time { v := now.Add(d); return &v }

	tests := []struct {
		name     string
		goal     *entity.Goal
		wantOK   bool
		wantDays int
	}{
		{"no due date", sampleGoal(entity.GoalStatusInProgress, nil), false, 0},
		{"overdue", sampleGoal(entity.GoalStatusInProgress, at(-time.Hour)), false, 0},
		{"in a few hours", sampleGoal(entity.GoalStatusInProgress, at(5*time.Hour)), true, 1},
		{"exactly three days", sampleGoal(entity.GoalStatusNotStarted, at(72*time.Hour)), true, 3},
		{"just over three days", sampleGoal(entity.GoalStatusNotStarted, at(73*time.Hour)), false, 0},
		{"completed goal", sampleGoal(entity.GoalStatusCompleted, at(24*time.Hour)), false, 0},
		{"cancelled goal", sampleGoal(entity.GoalStatusCancelled, at(24*time.Hour)), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, ok := DueSoonNotification(sampleUser(), tt.goal, now)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, mailer.TypeGoalDueSoon, job.Type)
			assert.Equal(t, "ann@x.com", job.To)
			assert.Equal(t, tt.wantDays, job.Data["DaysLeft"])
		})
	}
}

func TestStatusUpdatedNotification(t *testing.T) {
	job := StatusUpdatedNotification(sampleUser(), sampleGoal(entity.GoalStatusInProgress, nil))
	assert.Equal(t, mailer.TypeGoalStatusUpdated, job.Type)
	assert.Equal(t, "in_progress", job.Data["Status"])
	assert.Contains(t, job.Data["Body"], "in progress")
}

func TestMotivationalNotification(t *testing.T) {
	u := sampleUser()

	none := MotivationalNotification(u, nil)
	assert.Contains(t, none.Data["Body"], "Set a new goal")

	moving := MotivationalNotification(u, []*entity.Goal{sampleGoal(entity.GoalStatusInProgress, nil)})
	assert.Contains(t, moving.Data["Body"], "Keep going")
	assert.Equal(t, 1, moving.Data["InProgress"])

	done := MotivationalNotification(u, []*entity.Goal{
		sampleGoal(entity.GoalStatusCompleted, nil),
		sampleGoal(entity.GoalStatusCompleted, nil),
		sampleGoal(entity.GoalStatusInProgress, nil),
	})
	assert.Contains(t, done.Data["Body"], "completed 2 goal(s)")
	assert.Equal(t, 2, done.Data["Completed"])
}
