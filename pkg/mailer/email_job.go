package mailer

// Notification types; each one names a template set under templates/.
const (
	TypeGoalStatusUpdated = "goal_status_updated"
	TypeGoalDueSoon       = "goal_due_soon"
	TypeMotivational      = "motivational"
)

// NotificationJob is the JSON payload put on the RabbitMQ queue.
// With Type set the worker renders the matching template from Data;
// otherwise Subject plus Text and/or HTML are sent as-is.
type NotificationJob struct {
	Type    string         `json:"type,omitempty"`
	To      string         `json:"to"`
	Subject string         `json:"subject,omitempty"`
	Text    string         `json:"text,omitempty"`
	HTML    string         `json:"html,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}
