package ejs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/ejs"
)

func TestRender(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"name":   "Ada",
		"padded": "  x ",
		"html":   "<b>x</b>",
		"admin":  true,
		"items":  []any{"a", "b"},
		"n":      1,
		"price":  9.99,
		"whole":  3.0,
		"user":   map[string]any{"name": "Grace"},
	}

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "interpolation", src: "Hello <%= name %>", want: "Hello Ada"},
		{name: "no tags", src: "<p>Plain {text} with {{ braces }} and {% percent %}</p>", want: "<p>Plain {text} with {{ braces }} and {% percent %}</p>"},
		{name: "trailing brace", src: "a {", want: "a {"},
		{name: "escaped output", src: "<%= html %>", want: "&lt;b&gt;x&lt;/b&gt;"},
		{name: "raw output", src: "<%- html %>", want: "<b>x</b>"},
		{name: "comment", src: "a<%# note %>b", want: "ab"},
		{name: "literal open tag", src: "<%%= name %>", want: "<%= name %>"},
		{name: "if else", src: "<% if (admin) { %>A<% } else { %>U<% } %>", want: "A"},
		{name: "negation", src: "<% if (!admin) { %>A<% } else { %>U<% } %>", want: "U"},
		{name: "else if", src: "<% if (n > 1) { %>many<% } else if (n === 1) { %>one<% } else { %>none<% } %>", want: "one"},
		{name: "forEach with index", src: "<% items.forEach(function (item, i) { %><%= i %>:<%= item %> <% }) %>", want: "0:a 1:b "},
		{name: "forEach arrow", src: "<% items.forEach(item => { %>(<%= item %>)<% }); %>", want: "(a)(b)"},
		{name: "for of", src: "<% for (const item of items) { %>[<%= item %>]<% } %>", want: "[a][b]"},
		{name: "length", src: "<%= items.length %>", want: "2"},
		{name: "upper case", src: "<%= name.toUpperCase() %>", want: "ADA"},
		{name: "trim", src: "[<%= padded.trim() %>]", want: "[x]"},
		{name: "join", src: "<%= items.join(', ') %>", want: "a, b"},
		{name: "index access", src: "<%= items[1] %>", want: "b"},
		{name: "nested path", src: "<%= user.name %>", want: "Grace"},
		{name: "float", src: "<%= price %>", want: "9.99"},
		{name: "integral float", src: "<%= whole %>", want: "3"},
		{name: "trim newline", src: "<% if (admin) { -%>\nA\n<% } -%>\nB", want: "A\nB"},
		{name: "trim whitespace", src: "  <%_ if (admin) { _%>\n  X<% } %>", want: "X"},
		{name: "close tag inside string", src: `<%= "50%>" %>`, want: "50%&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ejs.Render(tt.src, data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		kind    error
		message string
	}{
		{name: "undefined variable", src: "Hello <%= missing %>", kind: ejs.ErrRuntime, message: "missing is not defined"},
		{name: "undefined loop source", src: "<% rows.forEach(function (r) { %><% }) %>", kind: ejs.ErrRuntime, message: "rows is not defined"},
		{name: "unresolved include", src: "<%- include('./components/header') %>", kind: ejs.ErrSyntax, message: "could not be resolved"},
		{name: "unclosed block", src: "<% if (name) { %>x", kind: ejs.ErrSyntax, message: "missing closing brace"},
		{name: "stray brace", src: "<% } %>", kind: ejs.ErrSyntax, message: "unexpected closing brace"},
		{name: "unclosed tag", src: "Hello <%= name", kind: ejs.ErrSyntax, message: "could not find matching close tag"},
		{name: "unsupported statement", src: "<% let x = 1 %>", kind: ejs.ErrSyntax, message: "unsupported statement"},
		{name: "function call", src: "<%= alert(name) %>", kind: ejs.ErrSyntax, message: "function calls are not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ejs.Render(tt.src, map[string]any{"name": "Ada"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.message)
			assert.Empty(t, got)
		})
	}
}

func TestEngineLenient(t *testing.T) {
	t.Parallel()

	engine := ejs.New(ejs.WithStrict(false))

	got, err := engine.Render("Hi <%= who %>!", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi !", got)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"first-name":"x","count":2,"ratio":0.25,"list":[1,1.5]}`), &data))

	ctx := ejs.Normalize(data)

	assert.NotContains(t, ctx, "first-name")
	assert.Equal(t, int64(2), ctx["count"])
	assert.Equal(t, "0.25", ctx["ratio"])
	assert.Equal(t, []any{int64(1), "1.5"}, ctx["list"])
}
