package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/pathways-hq/pathways/internal/logger"
)

// Service sends operational notification emails. All sends are best
// effort: failures are logged and never propagated to the caller.
type Service interface {
	SendNonComplianceNotice(ctx context.Context, to, candidateName string, daysSinceDeparture int, failingLabels []string)
	SendOverdueComplaintsDigest(ctx context.Context, to string, references []string)
	SendRemittanceAlertsDigest(ctx context.Context, to string, alertCount int, breakdown map[string]int)
	SendDocumentExpiryNotice(ctx context.Context, to, fileName string, daysLeft int)
}

type service struct {
	client *Client
	logger *logger.Logger
}

// NewService creates a new email notification service
func NewService(client *Client, logger *logger.Logger) Service {
	return &service{client: client, logger: logger}
}

func (s *service) send(ctx context.Context, to, subject, text string) {
	if !s.client.IsEnabled() {
		s.logger.Debugw("email disabled, skipping notification", "subject", subject)
		return
	}
	if _, err := s.client.Send(ctx, to, subject, "", text); err != nil {
		s.logger.Errorw("failed to send notification email",
			"to", to,
			"subject", subject,
			"error", err,
		)
		return
	}
	s.logger.Debugw("sent notification email", "to", to, "subject", subject)
}

func (s *service) SendNonComplianceNotice(ctx context.Context, to, candidateName string, daysSinceDeparture int, failingLabels []string) {
	subject := fmt.Sprintf("Compliance follow-up required: %s", candidateName)
	text := fmt.Sprintf(
		"Candidate %s is %d days past departure with unmet compliance items:\n- %s\n",
		candidateName, daysSinceDeparture, strings.Join(failingLabels, "\n- "),
	)
	s.send(ctx, to, subject, text)
}

func (s *service) SendOverdueComplaintsDigest(ctx context.Context, to string, references []string) {
	subject := fmt.Sprintf("%d complaints past SLA", len(references))
	text := fmt.Sprintf(
		"The following complaints have breached their SLA:\n- %s\n",
		strings.Join(references, "\n- "),
	)
	s.send(ctx, to, subject, text)
}

func (s *service) SendRemittanceAlertsDigest(ctx context.Context, to string, alertCount int, breakdown map[string]int) {
	subject := fmt.Sprintf("%d remittance alerts raised", alertCount)
	var b strings.Builder
	b.WriteString("Remittance alert scan results:\n")
	for alertType, count := range breakdown {
		fmt.Fprintf(&b, "- %s: %d\n", alertType, count)
	}
	s.send(ctx, to, subject, b.String())
}

func (s *service) SendDocumentExpiryNotice(ctx context.Context, to, fileName string, daysLeft int) {
	subject := fmt.Sprintf("Document expiring soon: %s", fileName)
	text := fmt.Sprintf("Document %s expires in %d days. Please arrange renewal.\n", fileName, daysLeft)
	s.send(ctx, to, subject, text)
}
