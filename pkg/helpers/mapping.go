package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/growth-partner/pkg/mailer"
)

// SubjectFor returns the fallback subject of a typed notification.
func SubjectFor(job *mailer.NotificationJob) string {
	switch strings.ToLower(job.Type) {
	case mailer.TypeGoalStatusUpdated:
		return "Your goal status was updated"
	case mailer.TypeGoalDueSoon:
		return "Your goal is due soon"
	case mailer.TypeMotivational:
		return "Keep up the good work"
	default:
		return "Notification"
	}
}

// EnsureRecipientAndEmail copies the recipient into the template data so
// templates can always reference .Email.
func EnsureRecipientAndEmail(job *mailer.NotificationJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}

// MergeDefaults fills keys missing from job.Data with the given defaults.
func MergeDefaults(job *mailer.NotificationJob, defaults map[string]any) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	for k, v := range defaults {
		if cur, ok := job.Data[k]; !ok || fmt.Sprintf("%v", cur) == "" {
			job.Data[k] = v
		}
	}
}
