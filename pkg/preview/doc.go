// Package preview turns the editable parts of an email (body, header and
// footer templates plus JSON data text) into HTML or an error message.
//
// The pipeline is: split subject frontmatter from the body, parse the data
// as a strict JSON object, resolve header and footer includes (package
// compose), then render the flat template (package ejs). Any failure yields
// a Result with Message set and no HTML, so callers never show a stale or
// partial preview.
//
//	res := preview.Render(body, header, footer, `{"name":"Ada"}`)
//	if !res.OK() {
//	    showError(res.Message)
//	    return
//	}
//	showHTML(res.HTML)
package preview
