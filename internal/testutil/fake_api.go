package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/fortuna/fortuna-web/internal/apiclient"
	"github.com/dafibh/fortuna/fortuna-web/internal/domain"
)

// Call is one request received by FakeAPI
type Call struct {
	Method string
	Path   string
}

// FakeAPI is an in-memory REST API serving categories and entries the way
// the real backend does: GET/POST on the base path, GET/PUT/DELETE on
// base/{id}, 422 with an errors array for rejected payloads.
type FakeAPI struct {
	mu         sync.Mutex
	server     *httptest.Server
	Categories map[int32]*domain.Category
	Entries    map[int32]*domain.Entry
	NextID     int32
	Calls      []Call

	// FailWith, when set for "METHOD /path", answers that request with the status and body
	FailWith map[string]FakeFailure
}

// FakeFailure is a canned error response
type FakeFailure struct {
	Status int
	Body   string
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		Categories: make(map[int32]*domain.Category),
		Entries:    make(map[int32]*domain.Entry),
		NextID:     1,
		FailWith:   make(map[string]FakeFailure),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the base URL of the fake
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Client returns an apiclient.Client pointed at the fake
func (f *FakeAPI) Client(t *testing.T) *apiclient.Client {
	t.Helper()
	hc := f.server.Client()
	hc.Timeout = 2 * time.Second
	c, err := apiclient.New(f.server.URL, hc.Timeout, apiclient.WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("Failed to create api client: %v", err)
	}
	return c
}

// AddCategory stores a category and returns it with its assigned id
func (f *FakeAPI) AddCategory(name, description string) *domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &domain.Category{ID: domain.Int32Ptr(f.NextID), Name: name, Description: description}
	f.Categories[f.NextID] = c
	f.NextID++
	return c
}

// AddEntry stores an entry and returns it with its assigned id
func (f *FakeAPI) AddEntry(e *domain.Entry) *domain.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = domain.Int32Ptr(f.NextID)
	f.Entries[f.NextID] = e
	f.NextID++
	return e
}

// CallCount returns how many requests matched method and path
func (f *FakeAPI) CallCount(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Fail makes "method path" answer with status and body
func (f *FakeAPI) Fail(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FailWith[method+" "+path] = FakeFailure{Status: status, Body: body}
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, Call{Method: r.Method, Path: r.URL.Path})
	if failure, ok := f.FailWith[r.Method+" "+r.URL.Path]; ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(failure.Status)
		_, _ = w.Write([]byte(failure.Body))
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch parts[0] {
	case "categories":
		serveCollection(w, r, parts[1:], f.Categories, &f.NextID, func(c *domain.Category, id int32) { c.ID = domain.Int32Ptr(id) }, validateCategory)
	case "entries":
		serveCollection(w, r, parts[1:], f.Entries, &f.NextID, func(e *domain.Entry, id int32) { e.ID = domain.Int32Ptr(id) }, validateEntry)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"title": "Not Found"})
	}
}

func serveCollection[T any](w http.ResponseWriter, r *http.Request, rest []string, store map[int32]*T, nextID *int32, setID func(*T, int32), validate func(*T) []string) {
	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			keys := make([]int32, 0, len(store))
			for id := range store {
				keys = append(keys, id)
			}
			// ascending, so callers have to sort themselves
			sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
			out := make([]*T, 0, len(keys))
			for _, id := range keys {
				out = append(out, store[id])
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			item := new(T)
			if err := json.NewDecoder(r.Body).Decode(item); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"title": "Bad Request"})
				return
			}
			if errs := validate(item); len(errs) > 0 {
				writeJSON(w, http.StatusUnprocessableEntity, map[string][]string{"errors": errs})
				return
			}
			setID(item, *nextID)
			store[*nextID] = item
			*nextID++
			writeJSON(w, http.StatusCreated, item)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id64, err := strconv.ParseInt(rest[0], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"title": "Not Found"})
		return
	}
	id := int32(id64)
	existing, ok := store[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"title": "Not Found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, existing)
	case http.MethodPut:
		item := new(T)
		if err := json.NewDecoder(r.Body).Decode(item); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"title": "Bad Request"})
			return
		}
		if errs := validate(item); len(errs) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string][]string{"errors": errs})
			return
		}
		setID(item, id)
		store[id] = item
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		delete(store, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func validateCategory(c *domain.Category) []string {
	if len(strings.TrimSpace(c.Name)) < domain.MinNameLength {
		return []string{"name is too short"}
	}
	return nil
}

func validateEntry(e *domain.Entry) []string {
	var errs []string
	if len(strings.TrimSpace(e.Name)) < domain.MinNameLength {
		errs = append(errs, "name is too short")
	}
	if e.CategoryID == nil {
		errs = append(errs, "category must exist")
	}
	return errs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
