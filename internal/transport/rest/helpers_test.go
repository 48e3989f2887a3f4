package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pitlane/racecontrol/internal/config"
)

type pingerStub struct{ err error }

func (p pingerStub) Ping(context.Context) error { return p.err }

type testServices struct {
	inf  *infringementServiceMock
	pen  *penaltyServiceMock
	sess *sessionServiceMock
	imp  *impexServiceMock
	set  *settingsServiceMock
	db   pingerStub
}

func newTestRouter(s testServices) http.Handler {
	if s.inf == nil {
		s.inf = &infringementServiceMock{}
	}
	if s.pen == nil {
		s.pen = &penaltyServiceMock{}
	}
	if s.sess == nil {
		s.sess = &sessionServiceMock{}
	}
	if s.imp == nil {
		s.imp = &impexServiceMock{}
	}
	if s.set == nil {
		s.set = &settingsServiceMock{}
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(RouterDeps{
		Log:           log,
		Infringements: NewInfringementHandler(log, s.inf),
		Penalties:     NewPenaltyHandler(log, s.pen),
		Sessions:      NewSessionHandler(log, s.sess, s.imp),
		Settings:      NewSettingsHandler(log, s.set),
		Health:        NewHealthHandler(s.db, "test"),
		CORS:          config.CORSConfig{AllowedOrigins: "*"},
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[ErrorResponse](t, rec).Error.Code
}
