package effect

import (
	"bytes"
	"html/template"
)

// Mail is the content of a transactional e-mail.
type Mail struct {
	Title       string
	Greeting    string
	Lines       []string
	ActionURL   string
	ActionLabel string
}

var mailTemplate = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#f4f6f8;font-family:Arial,Helvetica,sans-serif;color:#1f2933;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="padding:24px 0;">
<tr><td align="center">
<table role="presentation" width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:12px;padding:32px;">
<tr><td>
<h1 style="font-size:22px;margin:0 0 16px;color:#3b82f6;">{{.Title}}</h1>
{{if .Greeting}}<p style="font-size:15px;margin:0 0 12px;">{{.Greeting}}</p>{{end}}
{{range .Lines}}<p style="font-size:15px;line-height:1.5;margin:0 0 12px;">{{.}}</p>
{{end}}
{{if .ActionURL}}<p style="margin:24px 0;"><a href="{{.ActionURL}}" style="background:#3b82f6;color:#ffffff;padding:12px 20px;border-radius:8px;text-decoration:none;">{{.ActionLabel}}</a></p>{{end}}
<p style="font-size:12px;color:#7b8794;margin-top:32px;">Petly · Cuidamos de quien más quieres.</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`))

// Render produces the full HTML document.
func (m Mail) Render() (string, error) {
	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MailIntent renders m and wraps it as an e-mail intent.
func MailIntent(key, to string, m Mail) (Intent, error) {
	body, err := m.Render()
	if err != nil {
		return Intent{}, err
	}
	return NewEmail(key, to, m.Title, body), nil
}
