package mail

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/qellagg/qella-waitlist/internal/dependency"
	"github.com/qellagg/qella-waitlist/internal/entity"
	gerr "github.com/qellagg/qella-waitlist/internal/errors"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type Config struct {
	APIKey         string        `mapstructure:"sendgrid_api_key"`
	FromEmail      string        `mapstructure:"from_email"`
	FromName       string        `mapstructure:"from_email_name"`
	ReplyTo        string        `mapstructure:"reply_to"`
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
}

type Mailer struct {
	cli            dependency.Sender
	mailRepository dependency.Mail
	c              *Config
	ctx            context.Context
	cancel         context.CancelFunc
	templates      map[string]*template.Template
}

func New(c *Config, mailRepository dependency.Mail) (dependency.Mailer, error) {
	if c.APIKey == "" || c.FromEmail == "" || c.FromName == "" {
		return nil, fmt.Errorf("incomplete config: %+v", c)
	}
	return newMailer(c, sendgrid.NewSendClient(c.APIKey), mailRepository)
}

func newMailer(c *Config, cli dependency.Sender, mailRepository dependency.Mail) (*Mailer, error) {
	m := &Mailer{
		cli:            cli,
		mailRepository: mailRepository,
		c:              c,
		templates:      make(map[string]*template.Template),
	}

	if err := m.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	return m, nil
}

func (m *Mailer) parseTemplates() error {
	templateDir := "templates"

	dirEntries, err := templatesFS.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		templatePath := filepath.Join(templateDir, entry.Name())

		tmpl, err := template.ParseFS(templatesFS, templatePath)
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}

		m.templates[entry.Name()] = tmpl
	}

	return nil
}

func (m *Mailer) buildSendMailRequest(to, tn, subject string, data interface{}) (*entity.SendEmailRequest, error) {
	tmpl, ok := m.templates[tn]
	if !ok {
		return nil, fmt.Errorf("template not found: %v", tn)
	}

	body := &strings.Builder{}
	if err := tmpl.Execute(body, data); err != nil {
		return nil, fmt.Errorf("error executing template: %w", err)
	}

	return &entity.SendEmailRequest{
		From:    m.c.FromEmail,
		To:      to,
		Html:    body.String(),
		Subject: subject,
		ReplyTo: m.c.ReplyTo,
	}, nil
}

func (m *Mailer) send(ctx context.Context, ser *entity.SendEmailRequest) error {
	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.c.FromName, ser.From),
		ser.Subject,
		sgmail.NewEmail("", ser.To),
		"",
		ser.Html,
	)
	if ser.ReplyTo != "" {
		msg.SetReplyTo(sgmail.NewEmail("", ser.ReplyTo))
	}

	resp, err := m.cli.Send(msg)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return gerr.MailApiLimitReached
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("error sending email bad status code: %s, status code: %d", resp.Body, resp.StatusCode)
	}

	return nil
}

// sendWithInsert records the request in the outbox before attempting the
// provider call. A failed send is left unsent for the worker to retry and
// never surfaces to the caller.
func (m *Mailer) sendWithInsert(ctx context.Context, rep dependency.Repository, ser *entity.SendEmailRequest) error {
	id, err := rep.Mail().AddMail(ctx, ser)
	if err != nil {
		return fmt.Errorf("error inserting email: %w", err)
	}

	err = m.send(ctx, ser)
	if err != nil {
		// mail send failed, it will be retried by the worker
		slog.Default().ErrorContext(ctx, "can't send mail",
			slog.String("err", err.Error()),
		)
		return nil
	}

	err = rep.Mail().UpdateSent(ctx, id)
	if err != nil {
		return fmt.Errorf("error updating email: %w", err)
	}

	return nil
}
