package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/claimdesk/claimdesk/internal/domain/claim"
	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
	"github.com/claimdesk/claimdesk/internal/shared/services/markdown"
	"github.com/claimdesk/claimdesk/internal/shared/utils"
)

// ClaimNotifier emails claim outcomes: the customer on rejection, the
// customer and the finance team on payment.
type ClaimNotifier struct {
	smtp        *SMTPEmailService
	renderer    markdown.Renderer
	financeTeam []string
	title       cases.Caser
	logger      logger.Interface
}

func NewClaimNotifier(smtp *SMTPEmailService, renderer markdown.Renderer, financeTeam []string, log logger.Interface) *ClaimNotifier {
	return &ClaimNotifier{
		smtp:        smtp,
		renderer:    renderer,
		financeTeam: financeTeam,
		title:       cases.Title(language.English),
		logger:      log,
	}
}

type outcomeEmail struct {
	recipients []string
	subject    string
	headline   string
	lines      []string
	notes      string
}

func (n *ClaimNotifier) NotifyTransition(ctx context.Context, c *claim.Claim, entry claim.AuditEntry) error {
	msg, ok := n.compose(c, entry)
	if !ok {
		return nil
	}
	if len(msg.recipients) == 0 {
		n.logger.Debugw("no recipients for claim outcome email",
			"claim_id", c.ID(),
			"transition", entry.Transition.String(),
		)
		return nil
	}

	htmlBody, err := n.htmlBody(msg)
	if err != nil {
		return err
	}
	if err := n.smtp.Send(msg.recipients, msg.subject, htmlBody, n.plainBody(msg)); err != nil {
		return err
	}

	n.logger.Infow("claim outcome email sent",
		"claim_id", c.ID(),
		"transition", entry.Transition.String(),
		"recipients", len(msg.recipients),
		"customer", utils.MaskEmail(c.Customer().Email),
	)
	return nil
}

func (n *ClaimNotifier) compose(c *claim.Claim, entry claim.AuditEntry) (outcomeEmail, bool) {
	customer := c.Customer()
	name := n.title.String(strings.ToLower(strings.TrimSpace(customer.Name)))

	var recipients []string
	if customer.Email != "" {
		recipients = append(recipients, customer.Email)
	}

	switch entry.Transition {
	case vo.TransitionReject:
		return outcomeEmail{
			recipients: recipients,
			subject:    fmt.Sprintf("Claim %s was rejected", c.Number()),
			headline:   fmt.Sprintf("Dear %s, your repair claim %s was not approved.", name, c.Number()),
			lines: []string{
				"Device IMEI: " + c.IMEI().Masked(),
				"Reason: " + c.RejectionReason(),
			},
			notes: entry.Notes,
		}, true
	case vo.TransitionExecutePayment:
		return outcomeEmail{
			recipients: append(recipients, n.financeTeam...),
			subject:    fmt.Sprintf("Claim %s has been paid", c.Number()),
			headline:   fmt.Sprintf("Dear %s, payment for repair claim %s has been made.", name, c.Number()),
			lines: []string{
				"Device IMEI: " + c.IMEI().Masked(),
				"Amount: " + c.PaidAmount().String(),
				"Transaction reference: " + c.TransactionReference(),
			},
			notes: entry.Notes,
		}, true
	default:
		return outcomeEmail{}, false
	}
}

func (n *ClaimNotifier) plainBody(msg outcomeEmail) string {
	var b strings.Builder
	b.WriteString(msg.headline)
	b.WriteString("\n\n")
	for _, l := range msg.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if notes := n.renderer.ToText(msg.notes); notes != "" {
		b.WriteString("\nNotes:\n")
		b.WriteString(notes)
		b.WriteString("\n")
	}
	return b.String()
}

func (n *ClaimNotifier) htmlBody(msg outcomeEmail) (string, error) {
	var b strings.Builder
	b.WriteString("<html>\n<body>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n<ul>\n", html.EscapeString(msg.headline))
	for _, l := range msg.lines {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(l))
	}
	b.WriteString("</ul>\n")

	notes, err := n.renderer.ToHTML(msg.notes)
	if err != nil {
		return "", fmt.Errorf("failed to render notes: %w", err)
	}
	if notes != "" {
		b.WriteString("<h3>Notes</h3>\n")
		b.WriteString(notes)
	}
	b.WriteString("\n</body>\n</html>\n")
	return b.String(), nil
}
