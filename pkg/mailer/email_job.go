package mailer

// Template names understood by the worker.
const (
	TemplateWelcome       = "welcome"
	TemplatePasswordReset = "password_reset"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Subject/Text/HTML may be set directly, or Template+Data used to render.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
