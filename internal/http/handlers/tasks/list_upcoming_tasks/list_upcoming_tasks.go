package listupcomingtasks

import (
	"errors"
	"net/http"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
	service "taskminder/internal/core/services/list_upcoming_tasks"
	"taskminder/internal/http/handlers/response"
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
	result, err := h.service.Run(r.Context(), service.Input{})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
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
