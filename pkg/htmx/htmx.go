package htmx

import "net/http"

// Request headers sent by htmx.
const (
	HeaderRequest     = "HX-Request"
	HeaderTarget      = "HX-Target"
	HeaderTriggerName = "HX-Trigger-Name"
	HeaderCurrentURL  = "HX-Current-URL"
)

// Response headers understood by htmx.
const (
	HeaderRedirect = "HX-Redirect"
	HeaderRefresh  = "HX-Refresh"
	HeaderRetarget = "HX-Retarget"
	HeaderReswap   = "HX-Reswap"
	HeaderTrigger  = "HX-Trigger"
)

// Swap is an hx-swap strategy.
type Swap string

const (
	SwapInnerHTML Swap = "innerHTML"
	SwapOuterHTML Swap = "outerHTML"
	SwapBeforeEnd Swap = "beforeend"
	SwapNone      Swap = "none"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// Target returns the id of the element htmx will swap into, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderTarget)
}

// TriggerName returns the name of the element that triggered the request.
func TriggerName(r *http.Request) string {
	return r.Header.Get(HeaderTriggerName)
}

// Redirect sends htmx requests to url through HX-Redirect and falls back
// to a regular redirect with status for other requests.
func Redirect(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}
