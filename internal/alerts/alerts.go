// internal/alerts/alerts.go
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"faq-service/internal/common/logger"
)

// SNSPublisher is the subset of the SNS API used for alerting.
type SNSPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// SNSNotifier publishes knowledge refresh failures to an SNS topic so that
// operators learn about a degraded (stale-cache) service before users do.
type SNSNotifier struct {
	publisher SNSPublisher
	topicARN  string
	logger    logger.Logger
}

func NewSNSNotifier(publisher SNSPublisher, topicARN string, log logger.Logger) *SNSNotifier {
	return &SNSNotifier{
		publisher: publisher,
		topicARN:  topicARN,
		logger:    log,
	}
}

func (n *SNSNotifier) NotifyRefreshFailure(ctx context.Context, cause error) {
	message := fmt.Sprintf(
		"FAQ knowledge refresh failed at %s: %v\nThe service is serving its last successful snapshot.",
		time.Now().UTC().Format(time.RFC3339), cause,
	)

	_, err := n.publisher.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String("FAQ service: knowledge refresh failure"),
		Message:  aws.String(message),
	})
	if err != nil {
		n.logger.WithError(err).Error("failed to publish refresh failure alert", map[string]interface{}{
			"topicArn": n.topicARN,
		})
		return
	}

	n.logger.Info("published refresh failure alert", map[string]interface{}{
		"topicArn": n.topicARN,
	})
}
