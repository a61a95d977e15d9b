package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/MatthewCK/CALBOT/internal/http/handlers"
	"github.com/MatthewCK/CALBOT/internal/scheduler"
)

type stubEngine struct{ ready bool }

func (s stubEngine) Status() scheduler.Status { return scheduler.Status{Started: s.ready} }
func (s stubEngine) IsReady() bool            { return s.ready }

func TestRouterRoutes(t *testing.T) {
	h := handlers.NewHandler(handlers.Deps{Engine: stubEngine{ready: true}, Service: "cal-dinger-bot"})
	router := NewRouter(h)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{nethttp.MethodGet, "/health", nethttp.StatusOK},
		{nethttp.MethodGet, "/ready", nethttp.StatusOK},
		{nethttp.MethodGet, "/stats", nethttp.StatusOK},
		{nethttp.MethodGet, "/", nethttp.StatusOK},
		{nethttp.MethodPost, "/test-notify", nethttp.StatusOK},
		{nethttp.MethodGet, "/missing", nethttp.StatusNotFound},
		{nethttp.MethodPost, "/health", nethttp.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}
