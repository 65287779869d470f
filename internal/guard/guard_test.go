package guard

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/snehankekre/forumtopics/internal/forum"
)

func TestRunPassesThroughSuccess(t *testing.T) {
	t.Parallel()
	called := false
	err := Run(func() error { return nil }, func(forum.Descriptor) { called = true })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if called {
		t.Fatalf("callback invoked without an error")
	}
}

func TestRunCapturesError(t *testing.T) {
	t.Parallel()
	boom := errors.New("open config: no such file")

	var got forum.Descriptor
	err := Run(func() error { return boom }, func(d forum.Descriptor) { got = d })

	if !errors.Is(err, boom) {
		t.Fatalf("Run returned %v, want original error", err)
	}
	if got.Type != "*errors.errorString" {
		t.Fatalf("descriptor type = %q", got.Type)
	}
	if got.Message != "open config: no such file" {
		t.Fatalf("descriptor message = %q", got.Message)
	}
}

func TestRunCapturesWrappedErrorType(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("loading state: %w", errors.New("inner"))

	var got forum.Descriptor
	_ = Run(func() error { return wrapped }, func(d forum.Descriptor) { got = d })

	if got.Message != "loading state: inner" {
		t.Fatalf("descriptor message = %q", got.Message)
	}
}

func TestRunRepanicsByDefault(t *testing.T) {
	t.Parallel()
	var got forum.Descriptor

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("panic was swallowed")
		}
		if fmt.Sprint(r) != "kaboom" {
			t.Fatalf("unexpected panic value: %v", r)
		}
		if got.Message != "kaboom" {
			t.Fatalf("callback missed the panic: %+v", got)
		}
		if len(got.Stack) == 0 {
			t.Fatalf("panic descriptor has no stack")
		}
	}()

	_ = Run(func() error { panic("kaboom") }, func(d forum.Descriptor) { got = d })
}

func TestRunSuppressPanics(t *testing.T) {
	t.Parallel()
	var got forum.Descriptor

	err := Run(func() error { panic(errors.New("nil map write")) },
		func(d forum.Descriptor) { got = d }, SuppressPanics())

	if err == nil || !strings.Contains(err.Error(), "nil map write") {
		t.Fatalf("suppressed panic not returned as error: %v", err)
	}
	if got.Type != "*errors.errorString" || got.Message != "nil map write" {
		t.Fatalf("unexpected descriptor: %+v", got)
	}
}

func TestTrimStack(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		"goroutine 1 [running]:",
		"runtime/debug.Stack()",
		"\t/usr/local/go/src/runtime/debug/stack.go:26 +0x64",
		"github.com/snehankekre/forumtopics/internal/guard.Run.func1()",
		"\t/src/internal/guard/guard.go:44 +0x38",
		"panic({0x102c0, 0x1188})",
		"\t/usr/local/go/src/runtime/panic.go:785 +0x124",
		"main.divide(...)",
		"\t/src/main.go:12",
		"main.main()",
		"\t/src/main.go:7 +0x1c",
		"",
	}, "\n")

	got := TrimStack([]byte(raw))
	want := []string{
		"main.divide(...)",
		"/src/main.go:12",
		"main.main()",
		"/src/main.go:7 +0x1c",
	}
	if len(got) != len(want) {
		t.Fatalf("TrimStack = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TrimStack[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
