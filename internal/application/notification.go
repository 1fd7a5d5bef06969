package application

import (
	"fmt"
	"math"
	"time"

	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/pkg/mailer"
)

// DueSoonDays is how many days ahead of its due date a goal triggers a reminder.
const DueSoonDays = 3

// StatusUpdatedNotification tells the owner a goal moved to a new status.
func StatusUpdatedNotification(u *entity.User, g *entity.Goal) mailer.NotificationJob {
	return mailer.NotificationJob{
		Type: mailer.TypeGoalStatusUpdated,
		To:   u.Email.String(),
		Data: map[string]any{
			"Name":   u.Name.String(),
			"Title":  "Goal status updated",
			"Body":   fmt.Sprintf("%q is now %s.", g.Title.String(), statusLabel(g.Status)),
			"GoalID": g.ID.String(),
			"Goal":   g.Title.String(),
			"Status": string(g.Status),
		},
	}
}

// DueSoonNotification returns a reminder when g is due within DueSoonDays
// days of now. Past or far-off due dates, and goals without one, yield false.
func DueSoonNotification(u *entity.User, g *entity.Goal, now time.Time) (mailer.NotificationJob, bool) {
	if g.DueDate == nil || g.Status.IsTerminal() {
		return mailer.NotificationJob{}, false
	}
	days := int(math.Ceil(g.DueDate.Sub(now).Hours() / 24))
	if days <= 0 || days > DueSoonDays {
		return mailer.NotificationJob{}, false
	}
	return mailer.NotificationJob{
		Type: mailer.TypeGoalDueSoon,
		To:   u.Email.String(),
		Data: map[string]any{
			"Name":     u.Name.String(),
			"Title":    "Goal due soon",
			"Body":     fmt.Sprintf("%d day(s) left until %q is due.", days, g.Title.String()),
			"GoalID":   g.ID.String(),
			"Goal":     g.Title.String(),
			"DaysLeft": days,
		},
	}, true
}

// MotivationalNotification summarizes progress across all of a user's goals.
func MotivationalNotification(u *entity.User, goals []*entity.Goal) mailer.NotificationJob {
	var completed, inProgress int
	for _, g := range goals {
		switch g.Status {
		case entity.GoalStatusCompleted:
			completed++
		case entity.GoalStatusInProgress:
			inProgress++
		}
	}

	var body string
	switch {
	case completed > 0:
		body = fmt.Sprintf("You have completed %d goal(s). Great progress!", completed)
	case inProgress > 0:
		body = "You are moving steadily toward your goals. Keep going!"
	default:
		body = "Set a new goal and let's grow together!"
	}

	return mailer.NotificationJob{
		Type: mailer.TypeMotivational,
		To:   u.Email.String(),
		Data: map[string]any{
			"Name":       u.Name.String(),
			"Title":      "A little motivation",
			"Body":       body,
			"Completed":  completed,
			"InProgress": inProgress,
		},
	}
}

func statusLabel(s entity.GoalStatus) string {
	switch s {
	case entity.GoalStatusNotStarted:
		return "not started"
	case entity.GoalStatusInProgress:
		return "in progress"
	default:
		return string(s)
	}
}
