package dispatcher

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"

	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/rabbitmq"
)

// PushSender publishes the notification to an AMQP exchange for
// external delivery workers (mobile push and the like). The broker ACK
// is the transport boundary; worker-side delivery is best effort.
type PushSender struct {
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewPush(channel *rabbitmq.Channel, exchange string, routingKey string) *PushSender {
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &PushSender{channel: channel, exchange: exchange, routingKey: routingKey}
}

type pushMessage struct {
	Recipient string `json:"recipient"`
	UserID    int64  `json:"user_id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func (s *PushSender) SendNotification(ctx context.Context, n reminder.Notification) error {
	body, err := json.Marshal(pushMessage{
		Recipient: string(n.Recipient),
		UserID:    int64(n.UserID),
		Subject:   n.Subject,
		Body:      n.Body,
	})
	if err != nil {
		return err
	}
	return s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
}
