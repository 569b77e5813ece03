package export

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bodyPolicyOnce sync.Once
	bodyPolicy     *bluemonday.Policy

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeBody removes scripts, event handlers and inline styles from a
// rendered body while keeping document markup, tables and data URI images.
func SanitizeBody(raw string) string {
	return strings.TrimSpace(bodySanitizer().Sanitize(raw))
}

// PlainText strips every tag, keeping one line per block element.
func PlainText(raw string) string {
	marked := blockBreaks.Replace(raw)
	stripped := html.UnescapeString(textSanitizer().Sanitize(marked))

	lines := strings.Split(stripped, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

var blockBreaks = strings.NewReplacer(
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"</p>", "</p>\n", "</div>", "</div>\n", "</tr>", "</tr>\n",
	"</td>", "</td> ", "</th>", "</th> ",
	"</h1>", "</h1>\n", "</h2>", "</h2>\n", "</h3>", "</h3>\n",
	"</h4>", "</h4>\n", "</li>", "</li>\n",
)

func bodySanitizer() *bluemonday.Policy {
	bodyPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowDataURIImages()
		policy.AllowElements("header", "footer", "section")
		bodyPolicy = policy
	})
	return bodyPolicy
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
