package events

import (
	"errors"
	"net/http"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
	getuserbysessiontoken "taskminder/internal/core/services/get_user_by_session_token"
	"taskminder/internal/http/handlers/auth"
	"taskminder/internal/http/handlers/response"
	"taskminder/internal/implementations/dispatcher"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes the authenticated user to their notification
// stream. Reminders with the "internal" method are published to this
// stream while the subscription is open.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
	service   services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}
	result, err := h.service.Run(r.Context(), getuserbysessiontoken.Input{Token: token})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	streamID := dispatcher.StreamID(result.User.ID)

	// The subscriber may only listen to their own stream, whatever the
	// query says.
	query := r.URL.Query()
	query.Set("stream", streamID)
	r.URL.RawQuery = query.Encode()

	go func() {
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from notification events.",
			logging.Entry("userId", result.User.ID),
		)
		h.sseServer.RemoveStream(streamID)
	}()

	h.sseServer.CreateStream(streamID)
	h.log.Info(
		r.Context(),
		"Subscribed to notification events.",
		logging.Entry("userId", result.User.ID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
