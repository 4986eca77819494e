package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	"taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/service"
)

// TaskHandler bundles task CRUD endpoints.
type TaskHandler struct {
	tasks service.TaskService
	gate  *auth.Gate
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(tasks service.TaskService, gate *auth.Gate) *TaskHandler {
	return &TaskHandler{tasks: tasks, gate: gate}
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.TaskCreate true "Task payload"
// @Success 201 {object} model.Task
// @Failure 422 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}

	var input model.TaskCreate
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), input, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Get godoc
// @Summary Get task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task UUID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	task, err := h.tasks.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// List godoc
// @Summary List tasks with optional equality filters
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (todo, in_progress, done)"
// @Param assigned_to query string false "Filter by assignee UUID"
// @Param created_by query string false "Filter by creator UUID"
// @Param limit query int false "Page size (1-100)"
// @Param offset query int false "Row offset"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} pagination.Page[model.Task]
// @Failure 422 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	params, err := parsePagination(c)
	if err != nil {
		return err
	}

	filter, err := parseTaskFilter(c)
	if err != nil {
		return err
	}

	page, err := h.tasks.List(c.Request().Context(), filter, params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// parseTaskFilter reads the equality filters off the query string. Supplied
// filters are combined with logical AND by the service.
func parseTaskFilter(c echo.Context) (model.TaskFilter, error) {
	var filter model.TaskFilter
	if raw := c.QueryParam("status"); raw != "" {
		status := model.TaskStatus(raw)
		if !status.Valid() {
			return model.TaskFilter{}, errors.NewValidation("status must be todo, in_progress or done", "status")
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("assigned_to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return model.TaskFilter{}, errors.NewValidation("invalid identifier", "assigned_to")
		}
		filter.AssignedTo = &id
	}
	if raw := c.QueryParam("created_by"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return model.TaskFilter{}, errors.NewValidation("invalid identifier", "created_by")
		}
		filter.CreatedBy = &id
	}
	return filter, nil
}

// Update godoc
// @Summary Update a task (admin, creator, or assignee)
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task UUID"
// @Param request body model.TaskUpdate true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	task, err := h.tasks.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := h.gate.CanModifyTask(identity, task); err != nil {
		return err
	}

	var input model.TaskUpdate
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	updated, err := h.tasks.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a task (admin or creator)
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task UUID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := Identity(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	task, err := h.tasks.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := h.gate.CanDeleteTask(identity, task); err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
