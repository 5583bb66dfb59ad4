//go:build e2e

package app_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/libris-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/libris-backend/internal/app"
	"github.com/heartmarshall/libris-backend/internal/config"
)

// testServer is the full stack over a real PostgreSQL and a fake clock.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Clock  *clockwork.FakeClock
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	clock := clockwork.NewFakeClockAt(time.Now().UTC())

	cfg := &config.Config{
		App:     config.AppConfig{Env: "development"},
		CORS:    config.CORSConfig{AllowedOrigins: "http://localhost:3000"},
		Lending: config.LendingConfig{LoanPeriodDays: 14},
		Fines: config.FinesConfig{
			PerDayRate:    20,
			SweepInterval: 24 * time.Hour,
			SweepTimeout:  time.Minute,
		},
	}

	a := app.New(cfg, logger, pool, clock)
	handler, stop := a.Handler(nil)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		stop()
	})

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool, Clock: clock}
}

// call sends a JSON request and decodes the JSON response into out (if non-nil).
func (ts *testServer) call(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

// envelope mirrors every response wrapper the API produces.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    T      `json:"data"`
	Loan    T      `json:"loan"`
}

type bookJSON struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
}

type userJSON struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type loanJSON struct {
	ID            string     `json:"id"`
	BookID        string     `json:"bookId"`
	UserID        string     `json:"userId"`
	Status        string     `json:"status"`
	DisplayStatus string     `json:"displayStatus"`
	DueAt         time.Time  `json:"dueAt"`
	ReturnedAt    *time.Time `json:"returnedAt"`
	DaysOverdue   int        `json:"daysOverdue"`
}

type fineJSON struct {
	ID     string  `json:"id"`
	LoanID string  `json:"loanId"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
	Status string  `json:"status"`
}

func findFine(fines []fineJSON, loanID string) *fineJSON {
	for i := range fines {
		if fines[i].LoanID == loanID {
			return &fines[i]
		}
	}
	return nil
}
