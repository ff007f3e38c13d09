// internal/notifier/notifier.go

// Package notifier optionally delivers lifecycle notifications out of
// band via SES email and SNS SMS. Delivery failures are logged and never
// block the engine; the in-process log stays authoritative.
package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/config"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/errors"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/logger"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
)

// SESService is the slice of the SES client the notifier needs.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSService is the slice of the SNS client the notifier needs.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier fans one lifecycle notification out to the enabled channels.
type Notifier struct {
	cfg       config.NotifierConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

// New builds a notifier with live AWS clients for the configured region.
func New(ctx context.Context, cfg config.NotifierConfig, log logger.Logger) (*Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Notifier{
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notifier"}),
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

// NewWithClients builds a notifier around injected clients, used by tests.
func NewWithClients(cfg config.NotifierConfig, log logger.Logger, sesClient SESService, snsClient SNSService) *Notifier {
	return &Notifier{
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notifier"}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// Deliver sends one notification to every enabled channel. It returns an
// error only when every attempted channel failed; partial delivery is
// logged and counts as success.
func (n *Notifier) Deliver(ctx context.Context, notif models.Notification) error {
	attempted := 0
	delivered := 0
	var lastErr error

	if n.cfg.Email.Enabled && n.cfg.Email.Recipient != "" {
		attempted++
		if err := n.sendEmail(ctx, notif); err != nil {
			lastErr = err
			n.logger.Error("email delivery failed", map[string]interface{}{
				"notificationId": notif.ID,
				"error":          err.Error(),
			})
		} else {
			delivered++
		}
	}

	if n.cfg.SMS.Enabled && n.cfg.SMS.Recipient != "" {
		attempted++
		if err := n.sendSMS(ctx, notif); err != nil {
			lastErr = err
			n.logger.Error("sms delivery failed", map[string]interface{}{
				"notificationId": notif.ID,
				"error":          err.Error(),
			})
		} else {
			delivered++
		}
	}

	if attempted > 0 && delivered == 0 {
		return errors.NewNotificationSendFailedError("all", lastErr)
	}
	return nil
}

func (n *Notifier) sendEmail(ctx context.Context, notif models.Notification) error {
	body := notif.Message
	if notif.ApplicationID != "" {
		body = fmt.Sprintf("%s\n\nApplication: %s", notif.Message, notif.ApplicationID)
	}

	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.cfg.Email.FromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{n.cfg.Email.Recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(notif.Title)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, notif models.Notification) error {
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.cfg.SMS.Recipient),
		Message:     aws.String(fmt.Sprintf("%s: %s", notif.Title, notif.Message)),
	})
	return err
}
