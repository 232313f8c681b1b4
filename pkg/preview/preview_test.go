package preview_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/ejs"
	"github.com/dmitrymomot/mailpreview/pkg/preview"
)

const welcomeBody = `<%- include('./components/header', {
  title: 'Welcome Email',
  companyName: companyName
}) %>
<h2>Hello, <%= name %>!</h2>
<%- include('./components/footer') %>`

const welcomeData = `{
  "name": "John Doe",
  "companyName": "My Company",
  "title": "Outer Title",
  "unsubscribeUrl": "https://example.com/unsubscribe"
}`

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("interpolates data", func(t *testing.T) {
		t.Parallel()

		res := preview.Render("Hello <%= name %>", "", "", `{"name":"Ada"}`)
		require.True(t, res.OK(), res.Message)
		assert.Equal(t, "Hello Ada", res.HTML)
		assert.Equal(t, preview.DefaultSubject, res.Subject)
	})

	t.Run("template without tags is unchanged", func(t *testing.T) {
		t.Parallel()

		body := "<p>Plain {braces} and {{ mustaches }}</p>"
		res := preview.Render(body, "", "", "")
		require.True(t, res.OK(), res.Message)
		assert.Equal(t, body, res.HTML)
	})

	t.Run("renders header with scoped params and footer with outer data", func(t *testing.T) {
		t.Parallel()

		header := "<h1><%= title %></h1><p><%= companyName %></p>"
		footer := `<a href="<%= unsubscribeUrl %>"><%= title %></a>`

		res := preview.Render(welcomeBody, header, footer, welcomeData)
		require.True(t, res.OK(), res.Message)
		assert.Contains(t, res.HTML, "<h1>Welcome Email</h1><p>My Company</p>")
		assert.Contains(t, res.HTML, "<h2>Hello, John Doe!</h2>")
		assert.Contains(t, res.HTML, `<a href="https://example.com/unsubscribe">Outer Title</a>`)
	})

	t.Run("normalizes numbers", func(t *testing.T) {
		t.Parallel()

		res := preview.Render("<%= count %>/<%= price %>", "", "", `{"count": 3, "price": 9.5}`)
		require.True(t, res.OK(), res.Message)
		assert.Equal(t, "3/9.5", res.HTML)
	})

	t.Run("subject from frontmatter", func(t *testing.T) {
		t.Parallel()

		res := preview.Render("---\nsubject: Hi <%= name %> & co\n---\n<p>x</p>", "", "", `{"name":"Ada"}`)
		require.True(t, res.OK(), res.Message)
		assert.Equal(t, "Hi Ada & co", res.Subject)
		assert.Equal(t, "<p>x</p>", res.HTML)
	})
}

func TestRender_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		data    string
		is      error
		message string
	}{
		{name: "unquoted keys", body: "Hello <%= name %>", data: `{name: Ada}`, is: preview.ErrDataParse, message: "invalid character"},
		{name: "not an object", body: "x", data: `[1, 2]`, is: preview.ErrDataParse, message: "must be a JSON object"},
		{name: "trailing data", body: "x", data: `{} {}`, is: preview.ErrDataParse, message: "after top-level value"},
		{name: "truncated", body: "x", data: `{"a": `, is: preview.ErrDataParse, message: "unexpected end of JSON input"},
		{name: "undefined variable", body: "Hello <%= missing %>", data: `{}`, is: ejs.ErrRuntime, message: "missing is not defined"},
		{name: "malformed tag", body: "Hello <%= name", data: `{"name":"Ada"}`, is: ejs.ErrSyntax, message: "close tag"},
		{name: "partial error", body: "<%- include('./components/header', {}) %>", data: `{}`, is: ejs.ErrRuntime, message: "nope is not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := preview.Render(tt.body, "<%= nope %>", "", tt.data)
			require.False(t, res.OK())
			assert.ErrorIs(t, res.Err, tt.is)
			assert.Contains(t, res.Message, tt.message)
			assert.Empty(t, res.HTML)
		})
	}
}

func TestRenderer_Sanitize(t *testing.T) {
	t.Parallel()

	r := preview.New(preview.WithSanitize(true), preview.WithDefaultSubject("Preview"))

	res := r.Render(context.Background(), preview.Input{
		Body: `<p onclick="x()">Hi <%= name %></p><script>alert(1)</script>`,
		Data: `{"name":"Ada"}`,
	})
	require.True(t, res.OK(), res.Message)
	assert.Equal(t, "<p>Hi Ada</p>", res.HTML)
	assert.Equal(t, "Preview", res.Subject)
}

func TestParseData(t *testing.T) {
	t.Parallel()

	data, err := preview.ParseData("  \n ")
	require.NoError(t, err)
	assert.Empty(t, data)

	data, err = preview.ParseData(`{"name":"Ada","n":1}`)
	require.NoError(t, err)
	assert.Equal(t, "Ada", data["name"])
}
