package server

import (
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Page is a rendered HTML page.
type Page []byte

type handler struct {
	page atomic.Pointer[Page]
	log  zerolog.Logger
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
	case http.MethodHead:
	default:
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	p := h.page.Load()
	if req.URL.Path != "/" || p == nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		if req.Method == http.MethodGet {
			w.Write([]byte("not found"))
		}
		return
	}

	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-store")
	if req.Method == http.MethodHead {
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(*p); err != nil {
		h.log.Warn().Err(err).Msg("failed to write response")
	}
}
