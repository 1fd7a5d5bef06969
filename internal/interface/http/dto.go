package handlers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/pkg/helpers"
)

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name.String(),
		Email:     u.Email.String(),
		CreatedAt: helpers.FormatISO(u.CreatedAt),
		UpdatedAt: helpers.FormatISO(u.UpdatedAt),
	}
}

type goalResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toGoalResponse(g *entity.Goal) goalResponse {
	out := goalResponse{
		ID:          g.ID.String(),
		UserID:      g.UserID.String(),
		Title:       g.Title.String(),
		Description: g.Description.String(),
		Status:      string(g.Status),
		CreatedAt:   helpers.FormatISO(g.CreatedAt),
		UpdatedAt:   helpers.FormatISO(g.UpdatedAt),
	}
	if g.DueDate != nil {
		due := helpers.FormatISO(*g.DueDate)
		out.DueDate = &due
	}
	return out
}

func toGoalResponses(goals []*entity.Goal) []goalResponse {
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	return out
}

// nullableString tells an absent JSON member from an explicit null.
type nullableString struct {
	Set   bool
	Null  bool
	Value string
}

func (n *nullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Null = true
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

func parseDueDate(raw string) (*time.Time, error) {
	t, err := helpers.ParseDate(raw)
	if err != nil {
		return nil, apperror.Validation("must be a date (YYYY-MM-DD) or an RFC3339 timestamp", "due_date")
	}
	t = t.UTC()
	return &t, nil
}
