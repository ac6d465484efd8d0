package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/crediwise/crediwise/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendCycleSummary notifies a user that an instrument's billing cycle
// closed and its monthly spend counter was reset.
func (s *Sender) SendCycleSummary(to, username, instrumentName string, closedSpend float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Billing cycle closed for %s", instrumentName)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"The billing cycle for %s closed on %s.\n"+
			"Total spend this cycle: ₹%.2f\n"+
			"Your monthly spend counter has been reset, so reward caps and milestones start fresh.\n",
		username, instrumentName, time.Now().Format("2006-01-02"), closedSpend,
	)
	body += "\nBest regards,\nCrediWise"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendMilestoneAchieved congratulates a user on crossing a spend milestone.
func (s *Sender) SendMilestoneAchieved(to, username, instrumentName string, threshold, bonus float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Milestone unlocked on %s", instrumentName)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"You crossed the ₹%.0f spend milestone on %s and unlocked a ₹%.0f bonus.\n",
		username, threshold, instrumentName, bonus,
	)
	body += "\nBest regards,\nCrediWise"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
