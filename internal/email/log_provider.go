package email

import (
	"context"
	"log/slog"

	"tourhub_backend/internal/logger"
)

// LogProvider writes messages to the log instead of sending them. It is
// selected when no SMTP host is configured.
type LogProvider struct {
	renderer TemplateRenderer
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.FromContext(ctx).Info("Email not sent (log provider)",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
		slog.String("body", email.Body),
	)
	return nil
}

func (p *LogProvider) SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error {
	if _, err := p.renderer.Render(templateName, data); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Email not sent (log provider)",
		slog.Any("to", to),
		slog.String("subject", subject),
		slog.String("template", templateName),
		slog.String("action_url", data.ActionURL),
	)
	return nil
}

func (p *LogProvider) Validate() error { return nil }

func (p *LogProvider) Close() error { return nil }
