// Package mailpreview is a live previewer for EJS email templates.
//
// A template is split into a body, a shared header and a shared footer.
// The body pulls the partials in with include directives:
//
//	<%- include('header', { title: 'Welcome' }) %>
//	<p>Hello <%= name %></p>
//	<%- include('footer') %>
//
// Each keystroke in the editor schedules a debounced render. The render
// resolves the includes, evaluates every parameter object leniently, and
// parses the JSON test data strictly. The result is either HTML or a
// readable error. The rendered HTML can be relayed to a real inbox through
// POST /send-email.
//
// This package is the HTTP layer. It is a thin orchestration layer over chi
// with a handler-returns-error model:
//
//	func (h *Editor) Routes(r mailpreview.Router) {
//	    r.GET("/", h.page)
//	    r.POST("/preview", h.preview)
//	}
//
//	func (h *Editor) preview(c mailpreview.Context) error {
//	    res := h.renderer.Render(c, input)
//	    return c.Render(http.StatusOK, views.Preview(res))
//	}
//
// Rendering lives in pkg/compose, pkg/ejs and pkg/preview. Scheduling lives
// in pkg/debounce, and mail delivery in pkg/relay and pkg/mailer. The binary
// is cmd/mailpreview.
package mailpreview
