package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"qtirender/internal/domain"
	"qtirender/internal/notify"
	"qtirender/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	recipients  []string
	itemURLBase string
}

// NewSESNotifier creates a new SES-backed RenderFailureNotifier.
func NewSESNotifier(region, fromAddress, fromName string, recipients []string, itemURLBase string) (port.RenderFailureNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		recipients:  recipients,
		itemURLBase: strings.TrimRight(itemURLBase, "/"),
	}, nil
}

func (s *sesNotifier) NotifyRenderFailed(ctx context.Context, item *domain.Item) error {
	if len(s.recipients) == 0 {
		return nil
	}

	itemURL := ""
	if s.itemURLBase != "" {
		itemURL = fmt.Sprintf("%s/items/%s", s.itemURLBase, item.ID)
	}
	msg := notify.RenderFailed(item, itemURL)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.Subject},
				Body: &types.Body{
					Html: &types.Content{Data: &msg.HTMLBody},
					Text: &types.Content{Data: &msg.TextBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
