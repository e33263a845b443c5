package services

import (
	"context"
	"strings"

	"tourhub_backend/internal/email"
	"tourhub_backend/internal/models"
)

// Notifier delivers account emails. A returned error means the message was
// not handed off and the caller must treat the plaintext payload as undelivered.
type Notifier interface {
	SendWelcome(ctx context.Context, user *models.User, accountURL string) error
	SendPasswordReset(ctx context.Context, user *models.User, resetURL string) error
}

type EmailNotifier struct {
	provider     email.Provider
	companyName  string
	supportEmail string
}

func NewEmailNotifier(provider email.Provider, companyName, supportEmail string) *EmailNotifier {
	return &EmailNotifier{provider: provider, companyName: companyName, supportEmail: supportEmail}
}

func (n *EmailNotifier) SendWelcome(ctx context.Context, user *models.User, accountURL string) error {
	subject := "Welcome to the " + n.companyName + " family!"
	return n.provider.SendTemplate(ctx, []string{user.Email}, subject, email.TemplateWelcome, email.TemplateData{
		FirstName:    firstName(user.Name),
		Subject:      subject,
		ActionURL:    accountURL,
		ActionText:   "Upload user photo",
		SupportEmail: n.supportEmail,
		CompanyName:  n.companyName,
	})
}

func (n *EmailNotifier) SendPasswordReset(ctx context.Context, user *models.User, resetURL string) error {
	subject := "Your password reset token (valid for only 10 minutes)"
	return n.provider.SendTemplate(ctx, []string{user.Email}, subject, email.TemplatePasswordReset, email.TemplateData{
		FirstName:    firstName(user.Name),
		Subject:      subject,
		Message:      "Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: " + resetURL,
		ActionURL:    resetURL,
		ActionText:   "Reset your password",
		SupportEmail: n.supportEmail,
		CompanyName:  n.companyName,
	})
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return "there"
}
