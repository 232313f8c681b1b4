// Package compose resolves header and footer include directives in an email
// body template.
//
// Two partials are recognized:
//
//	<%- include('./components/header', { title: 'Welcome Email' }) %>
//	<%- include('./components/footer') %>
//
// Directives are found by an explicit scanner rather than a regular
// expression, so parameter objects may span several lines and contain nested
// braces or strings with parentheses. Includes of any other path are left in
// place.
//
// # Scoped parameters
//
// A directive without parameters is replaced by the raw partial text. A
// directive with parameters is evaluated by package objlit against the data,
// merged over the data and pre-rendered with package ejs, so each include can
// carry its own title or links without affecting the body:
//
//	flat, err := compose.Compose(ctx, body, header, footer, data)
//	if err != nil {
//	    // a partial failed to render
//	}
package compose
