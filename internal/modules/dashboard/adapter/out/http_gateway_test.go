package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	out "codestreak/internal/modules/dashboard/adapter/out"
	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/service"
	apperrors "codestreak/internal/platform/errors"
	"codestreak/internal/platform/logging"
)

type captured struct {
	method string
	path   string
	query  map[string][]string
	header string
	ctype  string
	body   map[string]any
}

type recorder struct {
	mu   sync.Mutex
	reqs []captured
}

func (r *recorder) add(req *http.Request) {
	c := captured{
		method: req.Method,
		path:   req.URL.Path,
		query:  req.URL.Query(),
		header: req.Header.Get("X-Telegram-Init-Data"),
		ctype:  req.Header.Get("Content-Type"),
	}
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &c.body)
		}
	}
	r.mu.Lock()
	r.reqs = append(r.reqs, c)
	r.mu.Unlock()
}

func (r *recorder) last() captured {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reqs[len(r.reqs)-1]
}

func newGateway(t *testing.T, srv *httptest.Server, token string, gate *service.Gate) *out.HTTPGateway {
	t.Helper()
	gw, err := out.NewHTTPGateway(out.HTTPOptions{BaseURL: srv.URL + "/", Token: token, Client: srv.Client()}, gate, logging.Discard())
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gw
}

func TestStatusSendsIdentityAndForce(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		_, _ = io.WriteString(w, `{
			"date": "2026-10-19", "timezone": "Europe/Kyiv",
			"github_commits": 3, "leetcode_solved": 1,
			"goals": {"github_commits": 2, "leetcode_solved": 2},
			"streak": {"current_streak": 4, "best_streak": 9},
			"reminders": ["09:00"], "repos": ["alice/api"], "avatar": "🦊"
		}`)
	}))
	defer srv.Close()

	gw := newGateway(t, srv, "tok en", nil)
	snap, err := gw.Status(context.Background(), true)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	want := domain.StatusSnapshot{
		Date:      "2026-10-19",
		Timezone:  "Europe/Kyiv",
		Counts:    domain.Counts{Commits: 3, Solved: 1},
		Goals:     domain.Goals{Commits: 2, Solved: 2},
		Streak:    domain.Streak{Current: 4, Best: 9},
		Reminders: []string{"09:00"},
		Repos:     []string{"alice/api"},
		Avatar:    "🦊",
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	got := rec.last()
	if got.method != http.MethodGet || got.path != "/api/status" {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	wantQuery := map[string][]string{"initData": {"tok en"}, "force": {"1"}}
	if diff := cmp.Diff(wantQuery, got.query); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
	if got.header != "" {
		t.Fatalf("GET must not carry the identity header")
	}

	if _, err := gw.Status(context.Background(), false); err != nil {
		t.Fatalf("unforced status: %v", err)
	}
	if _, ok := rec.last().query["force"]; ok {
		t.Fatalf("force must be omitted when not requested")
	}
}

func TestStatusNeedsSetupVariant(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"needs_setup": true, "avatar": "🐼", "github_username": "octocat",
			"goals": {"github_commits": 1, "leetcode_solved": 3}}`)
	}))
	defer srv.Close()

	snap, err := newGateway(t, srv, "t", nil).Status(context.Background(), false)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	want := domain.StatusSnapshot{
		NeedsSetup: true,
		Avatar:     "🐼",
		Setup: domain.SetupPrefill{
			GitHubUsername: "octocat",
			Goals:          &domain.Goals{Commits: 1, Solved: 3},
			Avatar:         "🐼",
		},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("setup mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryDecodesDays(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		_, _ = io.WriteString(w, `{"tz": "America/New_York", "days": [
			{"date": "2026-10-18", "github": 2, "leetcode": 0},
			{"date": "2026-10-19", "github": 0, "leetcode": 5}
		]}`)
	}))
	defer srv.Close()

	week, err := newGateway(t, srv, "t", nil).History(context.Background(), 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	want := domain.Week{Timezone: "America/New_York", Days: []domain.HistoryDay{
		{Date: "2026-10-18", Counts: domain.Counts{Commits: 2}},
		{Date: "2026-10-19", Counts: domain.Counts{Solved: 5}},
	}}
	if diff := cmp.Diff(want, week); diff != "" {
		t.Fatalf("week mismatch (-want +got):\n%s", diff)
	}
	if q := rec.last().query; q.Get("days") != "7" || q.Get("initData") != "t" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestSaveSettingsSendsOnlyPresentFields(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		_, _ = io.WriteString(w, `{"ok": true}`)
	}))
	defer srv.Close()

	avatar := "🐯"
	reminders := []string{}
	patch := domain.SettingsPatch{
		Goals:     &domain.Goals{Commits: 5, Solved: 4},
		Avatar:    &avatar,
		Reminders: &reminders,
	}
	if err := newGateway(t, srv, "secret", nil).SaveSettings(context.Background(), patch); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := rec.last()
	if got.method != http.MethodPost || got.path != "/api/settings" {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	if got.header != "secret" || got.ctype != "application/json" || got.query["initData"][0] != "secret" {
		t.Fatalf("identity not sent on both channels: %+v", got)
	}
	wantBody := map[string]any{
		"goals":     map[string]any{"github_commits": float64(5), "leetcode_solved": float64(4)},
		"avatar":    "🐯",
		"reminders": []any{},
	}
	if diff := cmp.Diff(wantBody, got.body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestGatewayErrorKinds(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/status":
			http.Error(w, "boom", http.StatusBadGateway)
		default:
			_, _ = io.WriteString(w, `<html>not json</html>`)
		}
	}))
	gw := newGateway(t, srv, "t", nil)

	_, err := gw.Status(context.Background(), false)
	var statusErr *out.StatusError
	if !errors.Is(err, apperrors.ErrRequestFailed) || !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadGateway {
		t.Fatalf("expected request failed with status 502, got %v", err)
	}
	if _, err := gw.History(context.Background(), 7); !errors.Is(err, apperrors.ErrRequestFailed) {
		t.Fatalf("expected request failed on bad body, got %v", err)
	}

	srv.Close()
	if _, err := gw.Status(context.Background(), false); !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error after close, got %v", err)
	}
}

func TestGatewayWrapsCallsInGate(t *testing.T) {
	t.Parallel()
	gate := service.NewGate()
	var mu sync.Mutex
	var transitions []bool
	gate.SetListener(func(busy bool) {
		mu.Lock()
		transitions = append(transitions, busy)
		mu.Unlock()
	})
	busyDuringCall := make(chan bool, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		busyDuringCall <- gate.Busy()
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newGateway(t, srv, "t", gate).History(context.Background(), 7); err == nil {
		t.Fatalf("expected failure")
	}
	if !<-busyDuringCall {
		t.Fatalf("gate must be busy while the request is in flight")
	}
	if gate.Busy() {
		t.Fatalf("gate must be released after a failed call")
	}
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]bool{true, false}, transitions); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestGatewayWithoutTokenMakesNoRequest(t *testing.T) {
	t.Parallel()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits++ }))
	defer srv.Close()

	if _, err := newGateway(t, srv, "", nil).Status(context.Background(), false); !errors.Is(err, apperrors.ErrMissingIdentity) {
		t.Fatalf("expected missing identity, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("server must not be hit without identity")
	}
}

func TestNewHTTPGatewayRejectsBadBaseURL(t *testing.T) {
	t.Parallel()
	if _, err := out.NewHTTPGateway(out.HTTPOptions{BaseURL: "not a url"}, nil, logging.Discard()); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
