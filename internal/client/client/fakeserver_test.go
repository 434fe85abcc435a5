package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
)

// fakeServer emulates the globalstats REST API.
type fakeServer struct {
	t   *testing.T
	srv *httptest.Server

	tokenCalls atomic.Int32
	tokenBody  string
	tokenCode  int
	tokenForm  url.Values

	mu       sync.Mutex
	last     recorded
	handlers map[string]http.HandlerFunc
}

type recorded struct {
	Method string
	Path   string
	Vars   map[string]string
	Auth   string
	Body   []byte
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{
		t:         t,
		tokenCode: http.StatusOK,
		tokenBody: `{"access_token":"tok-1","token_type":"Bearer","expires_in":"3600","created_at":0}`,
		handlers:  map[string]http.HandlerFunc{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/oauth/access_token", fs.token).Methods(http.MethodPost)
	r.HandleFunc("/v1/statistics", fs.route("create")).Methods(http.MethodPost)
	r.HandleFunc("/v1/statistics/{id}", fs.route("update")).Methods(http.MethodPut)
	r.HandleFunc("/v1/statistics/{id}", fs.route("get")).Methods(http.MethodGet)
	r.HandleFunc("/v1/statistics/{id}/section/{board}", fs.route("section")).Methods(http.MethodGet)
	r.HandleFunc("/v1/gtdleaderboard/{board}", fs.route("leaderboard")).Methods(http.MethodPost)
	r.HandleFunc("/v1/statisticlinks/{id}/request", fs.route("link")).Methods(http.MethodPost)

	fs.srv = httptest.NewServer(r)
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *fakeServer) URL() string { return fs.srv.URL }

func (fs *fakeServer) token(w http.ResponseWriter, r *http.Request) {
	fs.tokenCalls.Add(1)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fs.mu.Lock()
	fs.tokenForm = r.PostForm
	fs.mu.Unlock()

	w.WriteHeader(fs.tokenCode)
	_, _ = io.WriteString(w, fs.tokenBody)
}

func (fs *fakeServer) handle(name string, status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.handlers[name] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (fs *fakeServer) route(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.last = recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Vars:   mux.Vars(r),
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		}
		h, ok := fs.handlers[name]
		fs.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}
}

func (fs *fakeServer) lastRequest() recorded {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.last
}

func (fs *fakeServer) form() url.Values {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.tokenForm
}

func (fs *fakeServer) lastJSON(v any) {
	fs.t.Helper()
	if err := json.Unmarshal(fs.lastRequest().Body, v); err != nil {
		fs.t.Fatalf("decode request body: %v", err)
	}
}
