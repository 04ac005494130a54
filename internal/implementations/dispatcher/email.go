package dispatcher

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"taskminder/internal/core/domain/reminder"
)

const CHARSET = "UTF-8"

type SesSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSes(awsConfig aws.Config, sender string) *SesSender {
	return &SesSender{
		ses:    ses.NewFromConfig(awsConfig),
		sender: sender,
	}
}

func (s *SesSender) SendNotification(ctx context.Context, n reminder.Notification) error {
	recipient := string(n.Recipient)
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				ToAddresses: []string{recipient},
			},
			Message: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(n.Subject),
					Charset: aws.String(CHARSET),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(n.Body),
						Charset: aws.String(CHARSET),
					},
				},
			},
		},
	)
	return err
}
