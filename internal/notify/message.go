// Package notify builds the operator alert sent when an item fails to render.
package notify

import (
	"fmt"

	"golang.org/x/net/html"

	"qtirender/internal/domain"
)

// Message is a rendered alert.
type Message struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// RenderFailed builds the alert for item. itemURL may be empty.
func RenderFailed(item *domain.Item, itemURL string) Message {
	subject := fmt.Sprintf("Item %q failed to render", item.Title)
	text := fmt.Sprintf("Item %s (%q) failed after %d attempt(s).\n\nError: %s\n",
		item.ID, item.Title, item.RenderAttempts, item.RenderError)
	if itemURL != "" {
		text += "\n" + itemURL + "\n"
	}

	link := ""
	if itemURL != "" {
		link = fmt.Sprintf(`<p><a href="%s">Open item</a></p>`, html.EscapeString(itemURL))
	}
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Item failed to render</h2>
  <p><strong>%s</strong> (<code>%s</code>) failed after %d attempt(s).</p>
  <pre style="background: #f6f6f6; padding: 12px; white-space: pre-wrap;">%s</pre>
  %s
  <p style="color: #999; font-size: 12px;">Requeue the item once the cause is fixed.</p>
</body>
</html>`, html.EscapeString(item.Title), item.ID, item.RenderAttempts, html.EscapeString(item.RenderError), link)

	return Message{Subject: subject, HTMLBody: body, TextBody: text}
}
