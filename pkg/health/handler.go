package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler answers OK while the process runs.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, Report{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks on every request and answers 503 when any
// of them fails.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)
	return func(w http.ResponseWriter, r *http.Request) {
		rep := run(r.Context(), checks, cfg)
		status := http.StatusOK
		if !rep.Healthy() {
			status = http.StatusServiceUnavailable
		}
		respond(w, r, status, rep)
	}
}

// respond writes JSON for ?format=json or an Accept header asking for it,
// and a plain status line otherwise.
func respond(w http.ResponseWriter, r *http.Request, status int, rep Report) {
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(rep)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if rep.Healthy() {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte("Service Unavailable"))
}
