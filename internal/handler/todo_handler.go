package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradetrack-api/internal/models"
	"github.com/noah-isme/gradetrack-api/pkg/response"
)

type todoService interface {
	List(ctx context.Context, userID string) ([]models.Todo, error)
	Get(ctx context.Context, userID, id string) (*models.Todo, error)
	Create(ctx context.Context, userID string, req models.CreateTodoRequest) (*models.Todo, error)
	Update(ctx context.Context, userID, id string, req models.UpdateTodoRequest) (*models.Todo, error)
	Delete(ctx context.Context, userID, id string) error
}

// TodoHandler handles study todo endpoints.
type TodoHandler struct {
	service todoService
}

func NewTodoHandler(svc todoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// List godoc
// @Summary List todos
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todos, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, todos)
}

// Get godoc
// @Summary Get todo
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /todos/{id} [get]
func (h *TodoHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	todo, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, todo)
}

// Create godoc
// @Summary Create todo
// @Tags Todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateTodoRequest true "Todo payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid todo payload"))
		return
	}
	todo, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, todo)
}

// Update godoc
// @Summary Update todo
// @Tags Todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param payload body models.UpdateTodoRequest true "Todo payload"
// @Success 200 {object} response.Envelope
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid todo payload"))
		return
	}
	todo, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, todo)
}

// Delete godoc
// @Summary Delete todo
// @Tags Todos
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 204
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
