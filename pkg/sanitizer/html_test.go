package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailpreview/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "Hello",
		},
		{
			name:     "strips all HTML tags",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "Hello world",
		},
		{
			name:     "strips event handlers",
			input:    `<img src="x" onerror="alert('xss')">`,
			expected: "",
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: "click",
		},
		{
			name:     "strips data URLs",
			input:    `<a href="data:text/html,<script>alert('xss')</script>">click</a>`,
			expected: "click",
		},
		{
			name:     "strips CSS injection",
			input:    `<div style="background:url(javascript:alert('xss'))">content</div>`,
			expected: "content",
		},
		{
			name:     "strips nested tags",
			input:    `<div><p>nested <span>content</span></p></div>`,
			expected: "nested content",
		},
		{
			name:     "handles plain text",
			input:    "normal text without HTML",
			expected: "normal text without HTML",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "strips style tags",
			input:    `Hello <STYLE>.XSS{background-image:url("javascript:alert('XSS')");}</STYLE>World`,
			expected: "Hello World",
		},
		{
			name:     "strips iframe",
			input:    `<iframe src="https://evil.com"></iframe>content`,
			expected: "content",
		},
		{
			name:     "strips object tags",
			input:    `<object data="data:text/html,<script>alert(1)</script>"></object>text`,
			expected: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.StripHTML(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("strips scripts but keeps content", func(t *testing.T) {
		t.Parallel()

		result := sanitizer.SanitizeHTML(`<p>Hello</p><script>alert('xss')</script>`)
		assert.Equal(t, "<p>Hello</p>", result)
	})

	t.Run("keeps links without nofollow", func(t *testing.T) {
		t.Parallel()

		result := sanitizer.SanitizeHTML(`<a href="https://example.com">link</a>`)
		assert.Equal(t, `<a href="https://example.com">link</a>`, result)
	})

	t.Run("keeps layout tables", func(t *testing.T) {
		t.Parallel()

		result := sanitizer.SanitizeHTML(`<table width="600" cellpadding="0"><tr><td align="center" onclick="x()">Hi</td></tr></table>`)
		assert.Contains(t, result, "<table")
		assert.Contains(t, result, `width="600"`)
		assert.Contains(t, result, `align="center"`)
		assert.Contains(t, result, ">Hi</td>")
		assert.NotContains(t, result, "onclick")
	})

	t.Run("keeps allowed inline styles", func(t *testing.T) {
		t.Parallel()

		result := sanitizer.SanitizeHTML(`<p style="color: #333333">text</p>`)
		assert.Contains(t, result, "color")
		assert.Contains(t, result, "text</p>")
	})

	t.Run("drops unsafe links", func(t *testing.T) {
		t.Parallel()

		result := sanitizer.SanitizeHTML(`<a href="javascript:alert('xss')">click</a>`)
		assert.Equal(t, "click", result)
	})

	t.Run("drops style blocks", func(t *testing.T) {
		t.Parallel()

		result := sanitizer.SanitizeHTML(`<style>body{color:red}</style><p>x</p>`)
		assert.Equal(t, "<p>x</p>", result)
	})
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "block elements end lines",
			input:    `<h1>Welcome</h1><p>Hello, <strong>Ada</strong>!</p><p>Bye</p>`,
			expected: "Welcome\nHello, Ada!\nBye",
		},
		{
			name:     "decodes entities",
			input:    `<p>Tom &amp; Jerry &lt;3</p>`,
			expected: "Tom & Jerry <3",
		},
		{
			name:     "collapses whitespace",
			input:    "<div>\n   a    b\n\n\n\n</div><div>c</div>",
			expected: "a b\n\nc",
		},
		{
			name:     "drops scripts",
			input:    `<p>Hi</p><script>alert(1)</script>`,
			expected: "Hi",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, sanitizer.PlainText(tt.input))
		})
	}
}

func TestSanitizeHTMLCustom(t *testing.T) {
	t.Parallel()

	t.Run("with custom policy allowing img", func(t *testing.T) {
		t.Parallel()

		policy := bluemonday.NewPolicy()
		policy.AllowElements("img")
		policy.AllowAttrs("src", "alt").OnElements("img")

		input := `<img src="photo.jpg" alt="photo" onerror="alert('xss')">`
		result := sanitizer.SanitizeHTMLCustom(input, policy)
		assert.Equal(t, `<img src="photo.jpg" alt="photo">`, result)
	})

	t.Run("with nil policy returns input unchanged", func(t *testing.T) {
		t.Parallel()

		input := `<script>alert('xss')</script>`
		result := sanitizer.SanitizeHTMLCustom(input, nil)
		assert.Equal(t, input, result)
	})

	t.Run("with strict policy strips everything", func(t *testing.T) {
		t.Parallel()

		policy := bluemonday.StrictPolicy()
		input := `<p>Hello <strong>world</strong></p>`
		result := sanitizer.SanitizeHTMLCustom(input, policy)
		assert.Equal(t, "Hello world", result)
	})
}

func TestHTMLSanitizationXSSVectors(t *testing.T) {
	t.Parallel()

	// Common XSS attack vectors that should be neutralized
	vectors := []struct {
		name  string
		input string
	}{
		{
			name:  "script tag",
			input: `<script>alert('XSS')</script>`,
		},
		{
			name:  "script tag with src",
			input: `<script src="https://evil.com/xss.js"></script>`,
		},
		{
			name:  "img onerror",
			input: `<img src="x" onerror="alert('XSS')">`,
		},
		{
			name:  "img onload",
			input: `<img src="valid.jpg" onload="alert('XSS')">`,
		},
		{
			name:  "body onload",
			input: `<body onload="alert('XSS')">`,
		},
		{
			name:  "svg onload",
			input: `<svg onload="alert('XSS')">`,
		},
		{
			name:  "javascript protocol",
			input: `<a href="javascript:alert('XSS')">click</a>`,
		},
		{
			name:  "javascript protocol case variation",
			input: `<a href="JaVaScRiPt:alert('XSS')">click</a>`,
		},
		{
			name:  "data URL",
			input: `<a href="data:text/html;base64,PHNjcmlwdD5hbGVydCgnWFNTJyk8L3NjcmlwdD4=">click</a>`,
		},
		{
			name:  "vbscript protocol",
			input: `<a href="vbscript:msgbox('XSS')">click</a>`,
		},
		{
			name:  "style expression",
			input: `<div style="width:expression(alert('XSS'))">`,
		},
		{
			name:  "style background javascript",
			input: `<div style="background:url(javascript:alert('XSS'))">`,
		},
		{
			name:  "meta refresh",
			input: `<meta http-equiv="refresh" content="0;url=javascript:alert('XSS')">`,
		},
		{
			name:  "iframe",
			input: `<iframe src="javascript:alert('XSS')"></iframe>`,
		},
		{
			name:  "object tag",
			input: `<object data="data:text/html;base64,PHNjcmlwdD5hbGVydCgnWFNTJyk8L3NjcmlwdD4="></object>`,
		},
		{
			name:  "embed tag",
			input: `<embed src="javascript:alert('XSS')">`,
		},
		{
			name:  "form action",
			input: `<form action="javascript:alert('XSS')"><input type="submit"></form>`,
		},
		{
			name:  "input onfocus",
			input: `<input onfocus="alert('XSS')" autofocus>`,
		},
		{
			name:  "marquee onstart",
			input: `<marquee onstart="alert('XSS')">`,
		},
		{
			name:  "video onerror",
			input: `<video><source onerror="alert('XSS')">`,
		},
		{
			name:  "details ontoggle",
			input: `<details open ontoggle="alert('XSS')">`,
		},
		{
			name:  "math tag",
			input: `<math><mtext><table><mglyph><style><img src=x onerror="alert('XSS')">`,
		},
	}

	for _, v := range vectors {
		t.Run("StripHTML_"+v.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.StripHTML(v.input)
			// Should not contain any script or dangerous content
			assert.NotContains(t, result, "<script")
			assert.NotContains(t, result, "javascript:")
			assert.NotContains(t, result, "onerror=")
			assert.NotContains(t, result, "onload=")
			assert.NotContains(t, result, "onclick=")
			assert.NotContains(t, result, "alert(")
		})

		t.Run("SanitizeHTML_"+v.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.SanitizeHTML(v.input)
			// Should not contain any script or dangerous content
			assert.NotContains(t, result, "<script")
			assert.NotContains(t, result, "javascript:")
			assert.NotContains(t, result, "onerror=")
			assert.NotContains(t, result, "onload=")
			assert.NotContains(t, result, "onclick=")
			assert.NotContains(t, result, "alert(")
		})
	}
}
