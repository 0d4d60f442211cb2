package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/theirongolddev/upsell/internal/cli"
	"github.com/theirongolddev/upsell/internal/report"
)

// Compose builds the report email: an HTML summary with the PDF attached.
func Compose(req Request, from string, rep report.Report, pdf []byte, fileName string) (Message, error) {
	if err := req.Validate(); err != nil {
		return Message{}, err
	}

	greeting := "Hello,"
	if name := strings.TrimSpace(req.Name); name != "" {
		greeting = fmt.Sprintf("Hello %s,", html.EscapeString(name))
	}
	subject := "Your SaaS Upsell Revenue Analysis"
	if company := strings.TrimSpace(req.Company); company != "" {
		subject += " for " + company
	}

	var inputs strings.Builder
	for _, row := range report.InputRows(rep.Input) {
		fmt.Fprintf(&inputs, `
      <tr>
        <td style="padding: 6px 0; font-size: 14px; color: #5c6e67;">%s</td>
        <td style="padding: 6px 0; font-size: 14px; text-align: right; color: #1f2a26;">%s</td>
      </tr>`, html.EscapeString(row[0]), html.EscapeString(row[1]))
	}

	var cards strings.Builder
	for _, c := range rep.Cards {
		bg, fg := "#f4fbf8", "#1f2a26"
		if c.Highlight {
			bg, fg = "#245e4f", "#ffffff"
		}
		fmt.Fprintf(&cards, `
        <td style="padding: 12px; background: %s; color: %s; text-align: center;">
          <p style="margin: 0; font-size: 12px;">%s</p>
          <p style="margin: 4px 0; font-size: 20px; font-weight: bold;">%s</p>
          <p style="margin: 0; font-size: 12px;">%s</p>
        </td>`, bg, fg, html.EscapeString(c.Title), html.EscapeString(c.Value), html.EscapeString(c.Note))
	}

	var body strings.Builder
	fmt.Fprintf(&body, `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>%s</title>
</head>
<body style="margin: 0; padding: 16px; font-family: -apple-system, 'Segoe UI', 'Roboto', sans-serif; background-color: #fafaf7; line-height: 1.5;">
  <table width="100%%" cellpadding="0" cellspacing="0" border="0" style="max-width: 720px; margin: auto; background: #ffffff; padding: 24px;">
    <tr>
      <td style="border-bottom: 1px solid #e5e5e0; padding-bottom: 16px;">
        <h1 style="margin: 0; font-size: 24px; color: #245e4f;">%s</h1>
      </td>
    </tr>
    <tr><td style="padding: 16px 0; font-size: 14px;">%s<br>Here is the upsell revenue projection you requested. The full report is attached as a PDF.</td></tr>
    <tr>
      <td>
        <table width="100%%" cellpadding="0" cellspacing="8" border="0"><tr>%s
        </tr></table>
      </td>
    </tr>
    <tr>
      <td style="padding: 16px 0;">
        <table width="100%%" cellpadding="0" cellspacing="0" border="0">%s
        </table>
      </td>
    </tr>
    <tr>
      <td style="padding-top: 16px; border-top: 1px solid #e5e5e0; font-size: 12px; color: #5c6e67;">
        Upsell revenue is %s of projected revenue after %s.
      </td>
    </tr>
  </table>
</body>
</html>
`,
		html.EscapeString(subject),
		html.EscapeString(subject),
		greeting,
		cards.String(),
		inputs.String(),
		html.EscapeString(cli.FormatPercent(rep.Result.UpsellPercentage)),
		html.EscapeString(cli.FormatMonths(len(rep.Result.MonthlyData))),
	)

	msg := Message{
		From:    from,
		To:      strings.TrimSpace(req.Email),
		Subject: subject,
		HTML:    body.String(),
	}
	if len(pdf) > 0 {
		msg.Attachments = append(msg.Attachments, Attachment{
			FileName:    fileName,
			ContentType: "application/pdf",
			Content:     pdf,
		})
	}
	return msg, nil
}
