package listcategorytasks

import (
	"errors"
	"net/http"
	"strconv"
	"taskminder/internal/core/domain/category"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
	service "taskminder/internal/core/services/list_category_tasks"
	"taskminder/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Tasks []response.Task `json:"tasks"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawCategoryID := chi.URLParam(r, "categoryID")
	categoryID, err := strconv.ParseInt(rawCategoryID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid category ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{CategoryID: category.ID(categoryID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, category.ErrCategoryDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, category.ErrCategoryPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	tasks := make([]response.Task, 0, len(result.Tasks))
	for _, dt := range result.Tasks {
		task := response.Task{}
		task.FromDomainTask(dt)
		tasks = append(tasks, task)
	}
	response.Render(rw, Result{Tasks: tasks}, http.StatusOK)
}
