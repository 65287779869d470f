// Package guard runs a block of code, captures the first error or panic,
// and hands a descriptor of it to a callback before the failure continues on
// its way. The annotation flow uses the callback to look up related forum
// topics without swallowing the original failure.
package guard

import (
	"fmt"
	"runtime/debug"

	"github.com/snehankekre/forumtopics/internal/forum"
)

type runConfig struct {
	suppressPanics bool
}

type Option func(*runConfig)

// SuppressPanics converts a recovered panic into a returned error instead of
// re-raising it after the callback runs.
func SuppressPanics() Option {
	return func(c *runConfig) { c.suppressPanics = true }
}

// Run executes fn. When fn returns an error, the callback receives its
// descriptor and the error is returned unchanged; the caller decides whether
// to propagate it further. When fn panics, the callback receives a
// descriptor carrying the trimmed stack, then the panic resumes (or, with
// SuppressPanics, is returned as an error).
func Run(fn func() error, onErr func(forum.Descriptor), opts ...Option) (err error) {
	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		d := describe(r)
		d.Stack = TrimStack(debug.Stack())
		if onErr != nil {
			onErr(d)
		}
		if cfg.suppressPanics {
			err = fmt.Errorf("recovered panic: %v", r)
			return
		}
		panic(r)
	}()

	if err = fn(); err != nil {
		if onErr != nil {
			onErr(Describe(err))
		}
	}
	return err
}

// Describe builds the search descriptor for an error value.
func Describe(err error) forum.Descriptor {
	return forum.Descriptor{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}
}

func describe(r any) forum.Descriptor {
	if err, ok := r.(error); ok {
		return Describe(err)
	}
	// Non-error panic values (strings, ints) have no useful type name.
	return forum.Descriptor{
		Type:    "panic",
		Message: fmt.Sprint(r),
	}
}
