package lpsolver

import (
	"io"
	"os"
	"sync"
)

// verboseState is the single process-global resource shared by every
// SuppressVerbose caller: the LP backend has one verbose output stream, and
// concurrent callers must share one redirection rather than fight over it.
var verboseState struct {
	mu    sync.Mutex
	count int
	prior *os.File // nil when not currently redirected
}

// VerboseHandle is a scoped acquisition of the LP backend's verbose-output
// redirection. Unlike the original tool's Rust `gag`-based Weak-reference
// teardown, Go exposes no implicit point at which a dropped reference
// triggers cleanup, so the reference count here is explicit: every
// SuppressVerbose call must be paired with exactly one Release, typically
// via defer.
type VerboseHandle struct {
	released bool
}

// SuppressVerbose redirects the LP backend's verbose stream to io.Discard
// for as long as any handle remains unreleased. The first caller performs
// the redirection; later concurrent callers share it; the last Release
// restores the original stream.
func SuppressVerbose() (*VerboseHandle, error) {
	verboseState.mu.Lock()
	defer verboseState.mu.Unlock()

	if verboseState.count == 0 {
		prior := os.Stdout
		r, w, err := os.Pipe()
		if err != nil {
			return nil, err
		}
		os.Stdout = w
		verboseState.prior = prior
		go io.Copy(io.Discard, r)
	}
	verboseState.count++

	return &VerboseHandle{}, nil
}

// Release returns the handle's share of the redirection. It is idempotent:
// calling Release more than once on the same handle is a no-op after the
// first call, so a defer alongside an early explicit Release is safe.
func (h *VerboseHandle) Release() {
	if h.released {
		return
	}
	h.released = true

	verboseState.mu.Lock()
	defer verboseState.mu.Unlock()

	verboseState.count--
	if verboseState.count == 0 && verboseState.prior != nil {
		os.Stdout = verboseState.prior
		verboseState.prior = nil
	}
}
