package email

// Email is a single outbound message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the view model every email template receives.
type TemplateData struct {
	FirstName    string
	Subject      string
	Message      string
	ActionURL    string
	ActionText   string
	SupportEmail string
	CompanyName  string
}

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
