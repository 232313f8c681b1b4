package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mailpreview"
	"github.com/dmitrymomot/mailpreview/pkg/compose"
	"github.com/dmitrymomot/mailpreview/pkg/drafts"
	"github.com/dmitrymomot/mailpreview/pkg/htmx"
	"github.com/dmitrymomot/mailpreview/pkg/id"
	"github.com/dmitrymomot/mailpreview/pkg/preview"
	"github.com/dmitrymomot/mailpreview/pkg/theme"
	"github.com/dmitrymomot/mailpreview/views"
)

const (
	draftCookie = "draft"
	yearSeconds = 365 * 24 * 60 * 60
)

// EventEditorChanged is triggered on the client after the server edits a
// template field, so the preview re-renders.
const EventEditorChanged = "editor-changed"

// templateForm is the editor form: the three templates and the JSON data.
type templateForm struct {
	Header string `form:"header" json:"header"`
	Footer string `form:"footer" json:"footer"`
	Body   string `form:"body"   json:"body"`
	Data   string `form:"data"   json:"data"`
}

func (f templateForm) input() preview.Input {
	return preview.Input{Body: f.Body, Header: f.Header, Footer: f.Footer, Data: f.Data}
}

func (f templateForm) draft() drafts.Draft {
	return drafts.Draft{Header: f.Header, Footer: f.Footer, Body: f.Body, Data: f.Data}
}

type recipientForm struct {
	RecipientEmail string `form:"recipientEmail" json:"recipientEmail"`
}

type themeForm struct {
	Theme     string `form:"theme"     json:"theme"`
	CodeTheme string `form:"codeTheme" json:"codeTheme"`
}

// Editor serves the editor page, live previews and draft actions.
type Editor struct {
	drafts   *drafts.Store
	renderer *preview.Renderer
}

// NewEditor creates the editor handler.
func NewEditor(store *drafts.Store, renderer *preview.Renderer) *Editor {
	return &Editor{drafts: store, renderer: renderer}
}

// Routes declares the editor routes.
func (h *Editor) Routes(r mailpreview.Router) {
	r.GET("/", h.page)
	r.POST("/preview", h.preview)
	r.POST("/theme", h.setTheme)
	r.Route("/drafts", func(r mailpreview.Router) {
		r.POST("/", h.save)
		r.DELETE("/", h.clear)
		r.POST("/recipient", h.saveRecipient)
		r.POST("/insert/{partial}", h.insert)
	})
}

// page renders the editor with the visitor's draft and its preview.
func (h *Editor) page(c mailpreview.Context) error {
	draftID, err := h.draftID(c)
	if err != nil {
		return err
	}

	d, err := h.drafts.Load(c, draftID)
	if err != nil {
		return err
	}

	res := h.renderer.Render(c, preview.Input{Body: d.Body, Header: d.Header, Footer: d.Footer, Data: d.Data})
	return c.Render(http.StatusOK, views.Page(views.PageData{Draft: d, Preview: res}))
}

// preview renders the posted templates. Render failures are part of a
// successful response: the error panel replaces the preview.
func (h *Editor) preview(c mailpreview.Context) error {
	var f templateForm
	if err := c.Bind(&f); err != nil {
		return c.Error(http.StatusBadRequest, "Invalid request body", mailpreview.WithErrorCause(err))
	}

	res := h.renderer.Render(c, f.input())
	if !res.OK() {
		c.LogDebug("preview failed", "error", res.Message)
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, res)
	}
	return c.Render(http.StatusOK, views.Preview(res), htmx.WithOOB(views.RenderedFields(res)))
}

// save stores the templates and data of the current draft.
func (h *Editor) save(c mailpreview.Context) error {
	var f templateForm
	if err := c.Bind(&f); err != nil {
		return c.Error(http.StatusBadRequest, "Invalid request body", mailpreview.WithErrorCause(err))
	}

	draftID, err := h.draftID(c)
	if err != nil {
		return err
	}
	if err := h.drafts.Save(c, draftID, f.draft()); err != nil {
		return err
	}

	return h.done(c, "Templates saved")
}

// clear drops the stored draft and reloads the editor with the defaults.
func (h *Editor) clear(c mailpreview.Context) error {
	draftID, err := h.draftID(c)
	if err != nil {
		return err
	}
	if err := h.drafts.Clear(c, draftID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// saveRecipient remembers the recipient address for the next visit.
func (h *Editor) saveRecipient(c mailpreview.Context) error {
	var f recipientForm
	if err := c.Bind(&f); err != nil {
		return c.Error(http.StatusBadRequest, "Invalid request body", mailpreview.WithErrorCause(err))
	}

	recipient := strings.TrimSpace(f.RecipientEmail)
	if recipient == "" {
		return c.Error(http.StatusBadRequest, "Missing required fields: recipientEmail")
	}

	draftID, err := h.draftID(c)
	if err != nil {
		return err
	}
	if err := h.drafts.SaveRecipient(c, draftID, recipient); err != nil {
		return err
	}

	return h.done(c, "Recipient saved")
}

// insert adds a header or footer include to the posted body and returns
// the new body field.
func (h *Editor) insert(c mailpreview.Context) error {
	p, ok := compose.ParsePartial(c.Param("partial"))
	if !ok {
		return c.Error(http.StatusNotFound, "Unknown partial")
	}

	var f templateForm
	if err := c.Bind(&f); err != nil {
		return c.Error(http.StatusBadRequest, "Invalid request body", mailpreview.WithErrorCause(err))
	}

	body := compose.Insert(f.Body, p)
	if !c.IsHTMX() {
		return c.JSON(http.StatusOK, map[string]string{"body": body})
	}
	return c.Render(http.StatusOK, views.BodyField(body), htmx.WithTrigger(EventEditorChanged))
}

// setTheme stores the theme choices in cookies and in the draft, then
// reloads the page so the new theme applies.
func (h *Editor) setTheme(c mailpreview.Context) error {
	var f themeForm
	if err := c.Bind(&f); err != nil {
		return c.Error(http.StatusBadRequest, "Invalid request body", mailpreview.WithErrorCause(err))
	}

	current := c.Theme()
	site, code := current.Theme, current.CodeTheme
	if f.Theme != "" {
		m, ok := theme.Parse(f.Theme)
		if !ok {
			return c.Error(http.StatusBadRequest, fmt.Sprintf("Unknown theme %q", f.Theme))
		}
		site = m
	}
	if f.CodeTheme != "" {
		m, ok := theme.Parse(f.CodeTheme)
		if !ok {
			return c.Error(http.StatusBadRequest, fmt.Sprintf("Unknown code theme %q", f.CodeTheme))
		}
		code = m
	}

	c.SetCookie(theme.ThemeKey, string(site), yearSeconds)
	c.SetCookie(theme.CodeThemeKey, string(code), yearSeconds)

	draftID, err := h.draftID(c)
	if err != nil {
		return err
	}
	if err := h.drafts.SaveTheme(c, draftID, string(site), string(code)); err != nil {
		return err
	}

	if !c.IsHTMX() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, views.Notice("Theme updated"), htmx.WithRefresh())
}

// done answers a draft action: a notice for htmx, a redirect otherwise.
func (h *Editor) done(c mailpreview.Context, msg string) error {
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.Notice(msg))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// draftID returns the visitor's draft id from the signed cookie, issuing a
// new one when the cookie is missing or tampered with.
func (h *Editor) draftID(c mailpreview.Context) (string, error) {
	if v, err := c.CookieSigned(draftCookie); err == nil && id.Valid(v) {
		return v, nil
	}

	v := drafts.NewID()
	if err := c.SetCookieSigned(draftCookie, v, yearSeconds); err != nil {
		return "", fmt.Errorf("issue draft cookie: %w", err)
	}
	c.LogDebug("draft issued", "draft_id", v)
	return v, nil
}

func wantsJSON(c mailpreview.Context) bool {
	return strings.Contains(c.Header("Accept"), "application/json") && !c.IsHTMX()
}
