package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	rw.WriteHeader(http.StatusConflict)

	if rw.Status() != http.StatusConflict {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusConflict)
	}
	if w.Code != http.StatusConflict {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusConflict)
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
}

func TestResponseWriter_WriteHeader_HTMX(t *testing.T) {
	tests := []struct {
		name       string
		inputCode  int
		wireCode   int
		statusCode int
	}{
		{"200 stays 200", http.StatusOK, http.StatusOK, http.StatusOK},
		{"204 stays 204", http.StatusNoContent, http.StatusNoContent, http.StatusNoContent},
		{"400 becomes 200", http.StatusBadRequest, http.StatusOK, http.StatusBadRequest},
		{"409 becomes 200", http.StatusConflict, http.StatusOK, http.StatusConflict},
		{"500 becomes 200", http.StatusInternalServerError, http.StatusOK, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rw := NewResponseWriter(w, true)

			rw.WriteHeader(tt.inputCode)

			if rw.Status() != tt.statusCode {
				t.Errorf("Status() = %d, want %d", rw.Status(), tt.statusCode)
			}
			if w.Code != tt.wireCode {
				t.Errorf("underlying status = %d, want %d", w.Code, tt.wireCode)
			}
		})
	}
}

func TestResponseWriter_WriteHeader_OnlyOnce(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	rw.WriteHeader(http.StatusOK)
	rw.WriteHeader(http.StatusNotFound)

	if rw.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusOK)
	}
	if w.Code != http.StatusOK {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestResponseWriter_Write(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	data := []byte("<p>preview</p>")
	n, err := rw.Write(data)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if n != len(data) {
		t.Errorf("Write() = %d, want %d", n, len(data))
	}
	if rw.Size() != int64(len(data)) {
		t.Errorf("Size() = %d, want %d", rw.Size(), len(data))
	}
	if rw.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusOK)
	}
	if w.Body.String() != "<p>preview</p>" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestResponseWriter_OnBeforeWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	var order []int
	rw.OnBeforeWrite(func() { order = append(order, 1) })
	rw.OnBeforeWrite(func() { order = append(order, 2) })

	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write([]byte("data"))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("hooks ran as %v, want [1 2]", order)
	}
}

func TestResponseWriter_OnBeforeWrite_CalledOnFirstWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	rw.OnBeforeWrite(func() { w.Header().Set("X-Draft", "saved") })

	_, _ = rw.Write([]byte("data"))

	if got := w.Header().Get("X-Draft"); got != "saved" {
		t.Errorf("header set by hook = %q, want %q", got, "saved")
	}
}

func TestNewResponseWriter_ReusesWrapper(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, true)

	if got := NewResponseWriter(rw, false); got != rw {
		t.Error("NewResponseWriter wrapped an existing *ResponseWriter")
	}
}

func TestResponseWriter_FlushAndUnwrap(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	rw.Flush()
	if !w.Flushed {
		t.Error("underlying flusher not called")
	}
	if rw.Unwrap() != w {
		t.Error("Unwrap() did not return underlying writer")
	}
}
