package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PreviewHandler struct {
//	    renderer *preview.Renderer
//	}
//
//	func (h *PreviewHandler) Routes(r mailpreview.Router) {
//	    r.POST("/preview", h.render)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc. It may inspect the request,
// short-circuit, or decorate the response.
//
// Example:
//
//	func NoStore(next mailpreview.HandlerFunc) mailpreview.HandlerFunc {
//	    return func(c mailpreview.Context) error {
//	        c.SetHeader("Cache-Control", "no-store")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
