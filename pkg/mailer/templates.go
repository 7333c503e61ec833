package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTpl = template.Must(template.New(TemplateWelcome).Parse(`<html><body>
<p>Hi {{.Name}},</p>
<p>Your account {{.Email}} is ready. Start organizing your recipes with tags and ingredients.</p>
</body></html>`))

var passwordResetTpl = template.Must(template.New(TemplatePasswordReset).Parse(`<html><body>
<p>Hi {{.Name}},</p>
<p>We received a request to reset your password. The link below expires at {{.ExpiresAt}}.</p>
<p><a href="{{.ResetURL}}">Reset your password</a></p>
<p>If you did not request this, you can ignore this email.</p>
</body></html>`))

// Render renders a named template into subject, text and html bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	var tpl *template.Template
	switch name {
	case TemplateWelcome:
		tpl, subject = welcomeTpl, "Welcome to Recipe App"
		text = fmt.Sprintf("Your account %v is ready.", data["Email"])
	case TemplatePasswordReset:
		tpl, subject = passwordResetTpl, "Reset your password"
		text = fmt.Sprintf("Open this link to reset your password: %v", data["ResetURL"])
	default:
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
