// Package htmx holds the small amount of htmx protocol the editor needs:
// request detection, response headers and out-of-band fragments.
//
// The preview pane posts the editor form on every change; the handler
// answers with a fragment and, when the render fails, retargets it to the
// error panel:
//
//	cfg := htmx.NewConfig(
//	    htmx.WithRetarget("#preview-error"),
//	    htmx.WithReswap(htmx.SwapInnerHTML),
//	)
//	cfg.ApplyHeaders(w)
package htmx
