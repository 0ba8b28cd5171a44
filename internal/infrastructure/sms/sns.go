package sms

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/urep/registration-api/internal/config"
)

// SNSSender sends SMS via AWS SNS. SNS expects E.164 numbers, so the
// destination gets a "+" prepended to the stored country-code form.
type SNSSender struct {
	client *sns.Client
}

func NewSNSSender(cfg *config.Config) (*SNSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &SNSSender{client: sns.NewFromConfig(awsCfg)}, nil
}

func (s *SNSSender) Send(ctx context.Context, to, message string) error {
	dest := "+" + to
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &dest,
		Message:     &message,
	})
	return err
}
