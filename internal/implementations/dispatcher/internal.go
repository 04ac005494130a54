package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/r3labs/sse/v2"

	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/domain/user"
)

// InternalSender pushes the notification onto the owning user's
// server-sent-events stream. Delivery requires an active subscription;
// otherwise the reminder stays unsent and is retried on the next tick.
type InternalSender struct {
	sseServer *sse.Server
}

func NewInternal(sseServer *sse.Server) *InternalSender {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &InternalSender{sseServer: sseServer}
}

func StreamID(userID user.ID) string {
	return fmt.Sprintf("user-%d", userID)
}

type internalEvent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *InternalSender) SendNotification(ctx context.Context, n reminder.Notification) error {
	streamID := StreamID(n.UserID)
	if !s.sseServer.StreamExists(streamID) {
		return fmt.Errorf("user %d has no active event stream", n.UserID)
	}

	data, err := json.Marshal(internalEvent{Subject: n.Subject, Body: n.Body})
	if err != nil {
		return err
	}

	s.sseServer.Publish(streamID, &sse.Event{Data: data})
	return nil
}
