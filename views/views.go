package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailpreview/pkg/drafts"
	"github.com/dmitrymomot/mailpreview/pkg/preview"
	"github.com/dmitrymomot/mailpreview/pkg/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

// Static holds the stylesheet and scripts served under /static/.
//
//go:embed static
var Static embed.FS

// DefaultRecipient pre-fills the recipient input for new visitors.
const DefaultRecipient = "test@example.com"

var templates = template.Must(
	template.New("views").Funcs(template.FuncMap{
		"modes":     func() []theme.Mode { return theme.Modes },
		"title":     title,
		"statusMsg": http.StatusText,
	}).ParseFS(templateFS, "templates/*.html"),
)

// view is the data every template receives.
type view struct {
	Theme theme.Preference
	Data  any
}

// component renders the named template. The theme preference is read from
// ctx at render time.
func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, view{Theme: theme.FromContext(ctx), Data: data})
	})
}

// PageData is the state of the editor page.
type PageData struct {
	Draft   drafts.Draft
	Preview preview.Result
}

// Recipient returns the saved recipient or DefaultRecipient.
func (p PageData) Recipient() string {
	if p.Draft.Recipient != "" {
		return p.Draft.Recipient
	}
	return DefaultRecipient
}

// SendStatus is the outcome shown under the send form.
type SendStatus struct {
	MessageID string
	Error     string
}

// OK reports whether the send succeeded.
func (s SendStatus) OK() bool {
	return s.Error == ""
}

// Page renders the full editor.
func Page(data PageData) templ.Component {
	return component("page", data)
}

// Preview renders the preview pane content: the email in a sandboxed
// iframe, or the error panel when the render failed.
func Preview(res preview.Result) templ.Component {
	return component("preview", res)
}

// RenderedFields renders the hidden html and subject inputs of the send
// form as out-of-band swaps.
func RenderedFields(res preview.Result) templ.Component {
	return component("rendered-fields", res)
}

// BodyField renders the body template textarea.
func BodyField(body string) templ.Component {
	return component("body-field-view", body)
}

// SendResult renders the send status line.
func SendResult(s SendStatus) templ.Component {
	return component("send-status", s)
}

// Notice renders a short confirmation message.
func Notice(msg string) templ.Component {
	return component("notice", msg)
}

// ErrorData describes an error fragment or page.
type ErrorData struct {
	Code    int
	Message string
}

// ErrorContent renders an inline error for htmx requests.
func ErrorContent(code int, message string) templ.Component {
	return component("error-content", ErrorData{Code: code, Message: message})
}

// ErrorPage renders a standalone error page.
func ErrorPage(code int, message string) templ.Component {
	return component("error-page", ErrorData{Code: code, Message: message})
}

func title(m theme.Mode) string {
	s := string(m)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
