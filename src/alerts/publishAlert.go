package alerts

import (
	"context"
	"fmt"
	"log/slog"

	"smart-home-energy-analyzer/src/types"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
)

const Subject = "Smart Home Energy Anomaly Detected!"

func NewClient(sess *session.Session) snsiface.SNSAPI {
	return sns.New(sess)
}

type Publisher struct {
	client   snsiface.SNSAPI
	topicARN string
	logger   *slog.Logger
}

func NewPublisher(client snsiface.SNSAPI, topicARN string, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, topicARN: topicARN, logger: logger}
}

func Message(r types.EnrichedReading) string {
	return fmt.Sprintf("ANOMALY ALERT: %s - Device: %s, Consumption: %s kWh, Time: %s",
		r.AnomalyMessage, r.DeviceID, r.ConsumptionKWh.String(), r.Timestamp)
}

// PublishAnomaly sends one notification. Callers log and drop the error.
func (p *Publisher) PublishAnomaly(ctx context.Context, r types.EnrichedReading) error {
	_, err := p.client.PublishWithContext(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(Subject),
		Message:  aws.String(Message(r)),
	})
	if err != nil {
		return fmt.Errorf("%w: device %s: %v", types.ErrAlertPublish, r.DeviceID, err)
	}

	p.logger.Info("sent anomaly alert", "device_id", r.DeviceID, "message", r.AnomalyMessage)

	return nil
}
