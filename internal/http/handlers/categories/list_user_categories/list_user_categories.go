package listusercategories

import (
	"errors"
	"net/http"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
	service "taskminder/internal/core/services/list_user_categories"
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
	Categories []response.Category `json:"categories"`
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

	categories := make([]response.Category, 0, len(result.Categories))
	for _, dc := range result.Categories {
		category := response.Category{}
		category.FromDomainCategory(dc)
		categories = append(categories, category)
	}
	response.Render(rw, Result{Categories: categories}, http.StatusOK)
}
