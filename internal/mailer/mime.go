package mailer

import (
	"fmt"
	"mime"
	"sort"
	"strings"
	"time"
)

// buildMessage renders the RFC 5322 message body for an Email. text/plain
// only, or multipart/alternative when an HTML body is present.
func buildMessage(e Email) []byte {
	var b strings.Builder

	from := e.From
	if e.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", e.FromName), e.From)
	}

	writeHeader(&b, "From", from)
	writeHeader(&b, "To", strings.Join(e.To, ", "))
	if len(e.Cc) > 0 {
		writeHeader(&b, "Cc", strings.Join(e.Cc, ", "))
	}
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", e.Subject))
	writeHeader(&b, "Date", time.Now().Format(time.RFC1123Z))
	writeHeader(&b, "MIME-Version", "1.0")

	keys := make([]string, 0, len(e.Headers))
	for k := range e.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeHeader(&b, k, e.Headers[k])
	}

	switch {
	case e.HTMLBody != "" && e.TextBody != "":
		const boundary = "chhapai-alt-boundary"
		writeHeader(&b, "Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
		b.WriteString("\r\n")

		b.WriteString("--" + boundary + "\r\n")
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(e.TextBody)
		b.WriteString("\r\n--" + boundary + "\r\n")
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(e.HTMLBody)
		b.WriteString("\r\n--" + boundary + "--\r\n")

	case e.HTMLBody != "":
		writeHeader(&b, "Content-Type", "text/html; charset=utf-8")
		b.WriteString("\r\n")
		b.WriteString(e.HTMLBody)
		b.WriteString("\r\n")

	default:
		writeHeader(&b, "Content-Type", "text/plain; charset=utf-8")
		b.WriteString("\r\n")
		b.WriteString(e.TextBody)
		b.WriteString("\r\n")
	}

	return []byte(b.String())
}

func writeHeader(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}
