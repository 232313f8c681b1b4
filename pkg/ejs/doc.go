// Package ejs renders EJS-style templates through the pongo2 engine.
//
// Templates use the EJS tag syntax used by email template editors:
//
//	<h2>Hello, <%= name %>!</h2>
//	<% if (items.length > 0) { %>
//	  <ul><% items.forEach(function (item) { %><li><%= item %></li><% }) %></ul>
//	<% } %>
//
// The template is translated into pongo2 source and executed by a pongo2
// template set that has no loader, so templates can never read partials from
// disk. Includes must be resolved before rendering (see package compose).
//
// # Supported tags
//
//   - <%= expr %> escaped output
//   - <%- expr %> raw output
//   - <%# comment %> dropped
//   - <% statement %> if / else if / else, for..of, forEach, closing braces
//   - <%% literal "<%"
//   - -%> and _%> trim after the tag, <%_ trims before it
//
// # Expressions
//
// Identifiers, dotted and indexed paths, string/number/boolean literals,
// comparison and arithmetic operators, && || ! and parentheses, plus the
// .length, .toUpperCase(), .toLowerCase(), .trim() and .join(sep) members.
// Anything else is reported as a syntax error naming the offending token.
//
// With strict variables (the default) every identifier must be bound by the
// data or an enclosing loop, otherwise rendering fails with
// "<name> is not defined".
package ejs
