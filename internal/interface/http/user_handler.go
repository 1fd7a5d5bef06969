package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/internal/application"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/pkg/response"
)

type UserHandler struct {
	Users     *application.UserService
	Goals     *application.GoalService
	Snapshots *application.SnapshotService
	Logger    *logrus.Logger
}

func NewUserHandler(users *application.UserService, goals *application.GoalService, snapshots *application.SnapshotService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Goals: goals, Snapshots: snapshots, Logger: logger}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	name, err := entity.NewUserName(req.Name)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	email, err := entity.NewUserEmail(req.Email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	u, err := h.Users.CreateUser(c.Request.Context(), entity.CreateUser{Name: name, Email: email})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(u), "user created", nil)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	u, err := h.Users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user", nil)
}

// ListGoals handles GET /users/:id/goals.
func (h *UserHandler) ListGoals(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	goals, err := h.Goals.GetUserGoals(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toGoalResponses(goals), "goals", map[string]any{"count": len(goals)})
}

// SearchGoals handles GET /users/:id/goals/search?q=&size=.
func (h *UserHandler) SearchGoals(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Goals.SearchGoals(c.Request.Context(), id, c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// Motivate handles POST /users/:id/motivation.
func (h *UserHandler) Motivate(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.Goals.SendMotivation(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"queued": true}, "motivation queued", nil)
}

// Snapshot handles GET /users/:id/snapshot. ?refresh=true writes a fresh one first.
func (h *UserHandler) Snapshot(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if h.Snapshots == nil || h.Snapshots.Store == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "snapshots are not configured", response.ErrorBody{Kind: "unavailable"})
		return
	}

	var (
		snap *application.Snapshot
		err  error
	)
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		snap, err = h.Snapshots.Sync(c.Request.Context(), id)
	} else {
		snap, err = h.Snapshots.Load(c.Request.Context(), id)
	}
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var meta any
	if loc := h.Snapshots.Location(id); loc != "" {
		meta = map[string]any{"location": loc}
	}
	response.Success(c, http.StatusOK, snap, "snapshot", meta)
}

func (h *UserHandler) userID(c *gin.Context) (entity.UserID, bool) {
	id, err := entity.NewUserID(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return entity.UserID{}, false
	}
	return id, true
}
