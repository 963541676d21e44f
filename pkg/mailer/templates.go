package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// Template names carried on EmailJob.Template.
const (
	TplVerifyEmail       = "verify_email"
	TplResetPassword     = "reset_password"
	TplNewsletterWelcome = "newsletter_welcome"
)

type emailTemplate struct {
	subject string
	text    string
	html    string
}

var templates = map[string]emailTemplate{
	TplVerifyEmail: {
		subject: "Verify your email address",
		text: `Hi {{.Name}},

Welcome to {{.SiteName}}. Confirm your email address by opening the link below:

{{.VerifyURL}}

The link expires in 24 hours. If you did not create an account, ignore this email.`,
		html: `<p>Hi {{.Name}},</p>
<p>Welcome to {{.SiteName}}. Confirm your email address by clicking the button below:</p>
<p><a href="{{.VerifyURL}}">Verify email</a></p>
<p>The link expires in 24 hours. If you did not create an account, ignore this email.</p>`,
	},
	TplResetPassword: {
		subject: "Reset your password",
		text: `Hi {{.Name}},

A password reset was requested for your {{.SiteName}} account. Open the link below to choose a new password:

{{.ResetURL}}

The link expires in 1 hour. If you did not request a reset, ignore this email.`,
		html: `<p>Hi {{.Name}},</p>
<p>A password reset was requested for your {{.SiteName}} account.</p>
<p><a href="{{.ResetURL}}">Reset password</a></p>
<p>The link expires in 1 hour. If you did not request a reset, ignore this email.</p>`,
	},
	TplNewsletterWelcome: {
		subject: "Welcome to the newsletter",
		text: `You are now subscribed to the {{.SiteName}} newsletter.

Browse the member directory: {{.DirectoryURL}}`,
		html: `<p>You are now subscribed to the <b>{{.SiteName}}</b> newsletter.</p>
<p><a href="{{.DirectoryURL}}">Browse the member directory</a></p>`,
	},
}

// Render fills the named template with data and returns subject, text and
// HTML bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	tpl, ok := templates[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	t, err := texttpl.New(name).Parse(tpl.text)
	if err != nil {
		return "", "", "", err
	}
	var tb bytes.Buffer
	if err := t.Execute(&tb, data); err != nil {
		return "", "", "", err
	}

	h, err := htmltpl.New(name).Parse(tpl.html)
	if err != nil {
		return "", "", "", err
	}
	var hb bytes.Buffer
	if err := h.Execute(&hb, data); err != nil {
		return "", "", "", err
	}

	return tpl.subject, tb.String(), hb.String(), nil
}
