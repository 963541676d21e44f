package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either give Subject/Text/HTML directly, or name a Template and provide its
// Data; the worker renders it before sending.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "verify_email", "reset_password"
	Data     map[string]any `json:"data,omitempty"`
}
