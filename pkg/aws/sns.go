package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// TopicPublisher sends one message to a fixed topic and returns its message id.
type TopicPublisher interface {
	Publish(ctx context.Context, body []byte, attributes map[string]string) (string, error)
}

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSTopic is a TopicPublisher bound to one topic ARN.
type SNSTopic struct {
	api snsAPI
	arn string
}

func NewSNSTopic(cfg sdkaws.Config, topicArn string) *SNSTopic {
	return &SNSTopic{api: sns.NewFromConfig(cfg), arn: topicArn}
}

// Publish sends body as the message. Attributes become String message
// attributes so subscriptions can filter on them.
func (t *SNSTopic) Publish(ctx context.Context, body []byte, attributes map[string]string) (string, error) {
	if t.arn == "" {
		return "", fmt.Errorf("sns topic arn is not configured")
	}

	input := &sns.PublishInput{
		TopicArn: sdkaws.String(t.arn),
		Message:  sdkaws.String(string(body)),
	}
	if len(attributes) > 0 {
		input.MessageAttributes = make(map[string]types.MessageAttributeValue, len(attributes))
		for k, v := range attributes {
			input.MessageAttributes[k] = types.MessageAttributeValue{
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(v),
			}
		}
	}

	out, err := t.api.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("sns publish to %s: %w", t.arn, err)
	}
	return sdkaws.ToString(out.MessageId), nil
}
