// Package http assembles the bot's small operational HTTP surface.
package http

import (
	nethttp "net/http"

	"github.com/MatthewCK/CALBOT/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/stats", handler.Stats)
	mux.HandleFunc("/test-notify", handler.TestNotify)
	mux.HandleFunc("/", handler.Root)
	return mux
}
