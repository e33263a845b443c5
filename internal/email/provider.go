package email

import "context"

// Provider delivers email. Send and SendTemplate return an error when the
// message could not be handed to the transport.
type Provider interface {
	Send(ctx context.Context, email *Email) error
	SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error
	Validate() error
	Close() error
}

// TemplateRenderer renders a named HTML template.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
