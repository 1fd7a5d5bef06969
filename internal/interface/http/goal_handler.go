package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/internal/application"
	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/internal/interface/middleware"
	"github.com/oksasatya/growth-partner/pkg/response"
)

type GoalHandler struct {
	Goals  *application.GoalService
	Logger *logrus.Logger
}

func NewGoalHandler(goals *application.GoalService, logger *logrus.Logger) *GoalHandler {
	return &GoalHandler{Goals: goals, Logger: logger}
}

type createGoalRequest struct {
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
}

type updateGoalRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status" binding:"omitempty,goalstatus"`
	DueDate     nullableString `json:"due_date"`
}

// Create handles POST /goals for the user named in user_id. When an
// X-User-ID header is sent it must name the same user.
func (h *GoalHandler) Create(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.toEntity()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if raw := c.GetHeader(middleware.HeaderRequesterID); raw != "" && raw != in.UserID.String() {
		writeError(c, h.Logger, apperror.Unauthorized("not authorized to create goals for another user"))
		return
	}

	g, err := h.Goals.CreateGoal(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toGoalResponse(g), "goal created", nil)
}

// Get handles GET /goals/:id.
func (h *GoalHandler) Get(c *gin.Context) {
	id, requester, ok := h.target(c)
	if !ok {
		return
	}
	g, err := h.Goals.GetGoal(c.Request.Context(), id, requester)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toGoalResponse(g), "goal", nil)
}

// Update handles PATCH /goals/:id. Absent members are left untouched;
// "due_date": null clears the due date.
func (h *GoalHandler) Update(c *gin.Context) {
	id, requester, ok := h.target(c)
	if !ok {
		return
	}
	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.toEntity()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	g, err := h.Goals.UpdateGoal(c.Request.Context(), id, requester, in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toGoalResponse(g), "goal updated", nil)
}

// Delete handles DELETE /goals/:id.
func (h *GoalHandler) Delete(c *gin.Context) {
	id, requester, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.Goals.DeleteGoal(c.Request.Context(), id, requester); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *GoalHandler) requester(c *gin.Context) (entity.UserID, bool) {
	id, ok := middleware.RequesterID(c)
	if !ok {
		writeError(c, h.Logger, apperror.Validation("is required", "X-User-ID"))
		return entity.UserID{}, false
	}
	return id, true
}

func (h *GoalHandler) target(c *gin.Context) (entity.GoalID, entity.UserID, bool) {
	requester, ok := h.requester(c)
	if !ok {
		return entity.GoalID{}, entity.UserID{}, false
	}
	id, err := entity.NewGoalID(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return entity.GoalID{}, entity.UserID{}, false
	}
	return id, requester, true
}

func (r createGoalRequest) toEntity() (entity.CreateGoal, error) {
	userID, err := entity.NewUserID(r.UserID)
	if err != nil {
		return entity.CreateGoal{}, err
	}
	title, err := entity.NewGoalTitle(r.Title)
	if err != nil {
		return entity.CreateGoal{}, err
	}
	desc, err := entity.NewGoalDescription(r.Description)
	if err != nil {
		return entity.CreateGoal{}, err
	}
	in := entity.CreateGoal{UserID: userID, Title: title, Description: desc}
	if r.DueDate != nil && *r.DueDate != "" {
		if in.DueDate, err = parseDueDate(*r.DueDate); err != nil {
			return entity.CreateGoal{}, err
		}
	}
	return in, nil
}

func (r updateGoalRequest) toEntity() (entity.UpdateGoal, error) {
	var in entity.UpdateGoal
	if r.Title != nil {
		t, err := entity.NewGoalTitle(*r.Title)
		if err != nil {
			return in, err
		}
		in.Title = entity.Some(t)
	}
	if r.Description != nil {
		d, err := entity.NewGoalDescription(*r.Description)
		if err != nil {
			return in, err
		}
		in.Description = entity.Some(d)
	}
	if r.Status != nil {
		s, err := entity.ParseGoalStatus(*r.Status)
		if err != nil {
			return in, err
		}
		in.Status = entity.Some(s)
	}
	if r.DueDate.Set {
		if r.DueDate.Null || r.DueDate.Value == "" {
			in.DueDate = entity.Some[*time.Time](nil)
		} else {
			due, err := parseDueDate(r.DueDate.Value)
			if err != nil {
				return in, err
			}
			in.DueDate = entity.Some(due)
		}
	}
	return in, nil
}
