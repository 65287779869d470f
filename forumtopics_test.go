package forumtopics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/snehankekre/forumtopics/internal/forum"
)

func topicsUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "0" {
			fmt.Fprint(w, `{"topics": [
				{"id": 11, "title": "TypeError when mixing types", "has_accepted_answer": true},
				{"id": 12, "title": "Debugging callbacks", "has_accepted_answer": false}
			]}`)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnnotatorReportsError(t *testing.T) {
	t.Parallel()
	srv := topicsUpstream(t)

	var buf bytes.Buffer
	a := New(
		WithClient(forum.NewClient(srv.URL)),
		WithCriteria(forum.CriteriaNarrow),
		WithSolvedBadge(),
		WithOutput(&buf),
	)

	boom := errors.New("unsupported operand")
	err := a.Go(context.Background(), func() error { return boom })

	if !errors.Is(err, boom) {
		t.Fatalf("Go returned %v, want original error", err)
	}

	report := buf.String()
	if !strings.Contains(report, "***errors.errorString**: unsupported operand") {
		t.Fatalf("report missing error line:\n%s", report)
	}
	if !strings.Contains(report, "- [TypeError when mixing types]("+srv.URL+"/t/11) [✅ Solved]") {
		t.Fatalf("report missing solved link:\n%s", report)
	}
	if !strings.Contains(report, "- [Debugging callbacks]("+srv.URL+"/t/12)") {
		t.Fatalf("report missing link:\n%s", report)
	}
}

func TestAnnotatorNoReportOnSuccess(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	a := New(WithOutput(&buf))

	if err := a.Go(context.Background(), func() error { return nil }); err != nil {
		t.Fatalf("Go: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("report written without a failure:\n%s", buf.String())
	}
}

func TestAnnotatorSearchFailureDegrades(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	a := New(WithClient(forum.NewClient(srv.URL)), WithOutput(&buf))

	boom := errors.New("boom")
	if err := a.Go(context.Background(), func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("original error lost: %v", err)
	}
	if !strings.Contains(buf.String(), "No topics found") {
		t.Fatalf("report missing no-topics fallback:\n%s", buf.String())
	}
}

func TestAnnotatorPanicResumesAfterReport(t *testing.T) {
	t.Parallel()
	srv := topicsUpstream(t)

	var buf bytes.Buffer
	a := New(WithClient(forum.NewClient(srv.URL)), WithOutput(&buf))

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("panic was swallowed")
		}
		report := buf.String()
		if !strings.Contains(report, "Traceback:") {
			t.Fatalf("panic report missing traceback:\n%s", report)
		}
	}()

	_ = a.Go(context.Background(), func() error { panic("integer divide by zero") })
}
