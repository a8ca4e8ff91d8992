package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Recorded is a request captured by Upstream.
type Recorded struct {
	Path     string
	Header   http.Header
	Body     any
	Username string
	Password string
	HasAuth  bool
}

// Reply is the canned answer for a route.
type Reply struct {
	Status int
	Body   any
}

// Upstream is a fake external system. Each POST route answers with its
// Reply and records what it received.
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// NewUpstream starts a server answering POST on each route in replies.
// It is closed when the test ends.
func NewUpstream(t *testing.T, replies map[string]Reply) *Upstream {
	t.Helper()

	u := &Upstream{}
	r := chi.NewRouter()
	for route, reply := range replies {
		r.Post(route, u.handle(reply))
	}

	u.Server = httptest.NewServer(r)
	t.Cleanup(u.Close)
	return u
}

func (u *Upstream) handle(reply Reply) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body any
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
		user, pass, ok := r.BasicAuth()

		u.mu.Lock()
		u.requests = append(u.requests, Recorded{
			Path:     r.URL.Path,
			Header:   r.Header.Clone(),
			Body:     body,
			Username: user,
			Password: pass,
			HasAuth:  ok,
		})
		u.mu.Unlock()

		status := reply.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if reply.Body != nil {
			_ = json.NewEncoder(w).Encode(reply.Body)
		}
	}
}

// Requests returns a copy of the requests received so far.
func (u *Upstream) Requests() []Recorded {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]Recorded, len(u.requests))
	copy(out, u.requests)
	return out
}

// Last returns the most recent request. It fails the test if none arrived.
func (u *Upstream) Last(t *testing.T) Recorded {
	t.Helper()
	reqs := u.Requests()
	if len(reqs) == 0 {
		t.Fatal("upstream received no requests")
	}
	return reqs[len(reqs)-1]
}
