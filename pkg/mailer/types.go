package mailer

import "fmt"

// Tags are provider-specific labels attached to a message. A tag is either
// presence-only (struct{}{} value) or a name/value pair.
//   - Postmark: a single tag name
//   - Resend: name/value pairs (presence-only tags become name="true")
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// First returns the alphabetically smallest tag name, for providers that
// accept a single tag. Empty when there are no tags.
func (t Tags) First() string {
	first := ""
	for name := range t {
		if first == "" || name < first {
			first = name
		}
	}
	return first
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a message ready to be handed to a Sender.
type Email struct {
	Headers map[string]string // Custom headers
	Tags    Tags              // Provider-specific tags
	Subject string
	HTML    string   // Rendered template output
	Text    string   // Plain text alternative
	From    string   // Overrides the transport's default sender
	ReplyTo string
	To      []string // At least one recipient
}
