package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/blog-service/internal/config"
	"github.com/Dan9191/blog-service/internal/models"
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

// SendWelcome sends a welcome email to a newly registered user
func (s *Sender) SendWelcome(to string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Welcome to Blog Service"

	body := "Hello,\n\n" +
		"Your account has been created. Log in to start posting and voting.\n" +
		"\nBest regards,\nBlog Service"
	e.Text = []byte(body)

	return s.send(e)
}

// SendDigest sends the weekly digest of top-voted posts
func (s *Sender) SendDigest(to string, posts []models.PostWithVotes) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Weekly Top Posts"

	body := "Hello,\n\nThe most voted posts this week:\n\n"
	for i, p := range posts {
		body += fmt.Sprintf("%d. %s (%d votes)\n", i+1, p.Post.Title, p.Votes)
	}
	body += "\nBest regards,\nBlog Service"
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
