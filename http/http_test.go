package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantMsg    string
		wantUnwrap error
	}{
		{
			name: "basic error",
			err: &APIError{
				Service:    "jira",
				StatusCode: 404,
				Message:    "Issue does not exist",
				Endpoint:   "/rest/api/3/issue/TEST-1",
			},
			wantMsg:    "jira API error (404) at /rest/api/3/issue/TEST-1: Issue does not exist",
			wantUnwrap: ErrNotFound,
		},
		{
			name: "with request ID",
			err: &APIError{
				Service:    "jira",
				StatusCode: 503,
				Message:    "Unavailable",
				Endpoint:   "/rest/api/3/search/jql",
				RequestID:  "V1StGXR8_Z5jdHi6B-myT",
			},
			wantMsg:    "jira API error (503) at /rest/api/3/search/jql [V1StGXR8_Z5jdHi6B-myT]: Unavailable",
			wantUnwrap: ErrServerError,
		},
		{
			name:       "unauthorized",
			err:        &APIError{Service: "jira", StatusCode: 401, Message: "Unauthorized", Endpoint: "/rest/api/3/myself"},
			wantMsg:    "jira API error (401) at /rest/api/3/myself: Unauthorized",
			wantUnwrap: ErrUnauthorized,
		},
		{
			name:       "forbidden",
			err:        &APIError{Service: "jira", StatusCode: 403, Message: "Forbidden", Endpoint: "/rest/api/3/issue/SEC-1"},
			wantMsg:    "jira API error (403) at /rest/api/3/issue/SEC-1: Forbidden",
			wantUnwrap: ErrForbidden,
		},
		{
			name:       "rate limited",
			err:        &APIError{Service: "jira", StatusCode: 429, Message: "Too many requests", Endpoint: "/rest/api/3/issue"},
			wantMsg:    "jira API error (429) at /rest/api/3/issue: Too many requests",
			wantUnwrap: ErrRateLimited,
		},
		{
			name:       "bad request",
			err:        &APIError{Service: "jira", StatusCode: 400, Message: "Invalid JQL", Endpoint: "/rest/api/3/search/jql"},
			wantMsg:    "jira API error (400) at /rest/api/3/search/jql: Invalid JQL",
			wantUnwrap: ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantUnwrap) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantUnwrap)
			}
		})
	}
}

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"code":401,"message":"Unauthorized; scope does not match"}`, "Unauthorized; scope does not match"},
		{"error field", `{"error":"invalid_token"}`, "invalid_token"},
		{"message wins", `{"message":"m","error":"e"}`, "m"},
		{"jira envelope", `{"errorMessages":["x"],"errors":{}}`, ""},
		{"not json", `<html/>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: http.StatusUnauthorized}
			err := NewAPIError("jira", resp, []byte(tt.body), "/rest/api/3/myself")
			if err.Message != tt.want {
				t.Errorf("Message = %q, want %q", err.Message, tt.want)
			}
			if err.Service != "jira" || err.StatusCode != 401 || err.RequestID != "" {
				t.Errorf("APIError = %+v", err)
			}
			if !IsUnauthorized(err) {
				t.Error("IsUnauthorized() = false")
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	wrapped := func(code int) error {
		return fmt.Errorf("call: %w", &APIError{Service: "jira", StatusCode: code})
	}

	if !IsNotFound(wrapped(404)) || IsNotFound(wrapped(403)) {
		t.Error("IsNotFound mismatch")
	}
	if !IsUnauthorized(wrapped(401)) || IsUnauthorized(wrapped(404)) {
		t.Error("IsUnauthorized mismatch")
	}
	if !IsForbidden(wrapped(403)) || IsForbidden(wrapped(401)) {
		t.Error("IsForbidden mismatch")
	}
	if !IsRateLimited(wrapped(429)) || IsRateLimited(wrapped(503)) {
		t.Error("IsRateLimited mismatch")
	}
	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Error("AsAPIError(plain) = true")
	}
}

func TestStatusSentinelNoMatch(t *testing.T) {
	for _, code := range []int{302, 409, 422} {
		if got := StatusSentinel(code); got != nil {
			t.Errorf("StatusSentinel(%d) = %v, want nil", code, got)
		}
	}
}

func TestDecodeError(t *testing.T) {
	inner := errors.New("invalid character 'x'")
	err := newDecodeError("jira", "/rest/api/3/issue", make([]byte, 2000), inner)

	if len(err.Body) != maxDecodeBody {
		t.Errorf("len(Body) = %d, want %d", len(err.Body), maxDecodeBody)
	}
	if !errors.Is(err, inner) {
		t.Error("DecodeError should unwrap to the JSON error")
	}
	if !IsDecodeError(err) {
		t.Error("IsDecodeError() = false, want true")
	}
	want := "decode jira response from /rest/api/3/issue: invalid character 'x'"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// cursorPages serves pages keyed by cursor, "" being the first.
func cursorPages(pages map[string][]int, next map[string]string, calls *int) PageFetcher[int] {
	return func(_ context.Context, cursor string) ([]int, string, error) {
		*calls++
		return pages[cursor], next[cursor], nil
	}
}

func TestPageIterator(t *testing.T) {
	t.Run("iterates through pages", func(t *testing.T) {
		var calls int
		fetch := cursorPages(
			map[string][]int{"": {1, 2, 3}, "b": {4, 5, 6}, "c": {7}},
			map[string]string{"": "b", "b": "c"},
			&calls,
		)

		iter := NewPageIterator(fetch)
		got, err := iter.All(context.Background())
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}

		want := []int{1, 2, 3, 4, 5, 6, 7}
		if len(got) != len(want) {
			t.Fatalf("got %d items, want %d", len(got), len(want))
		}
		for i, v := range got {
			if v != want[i] {
				t.Errorf("item %d = %d, want %d", i, v, want[i])
			}
		}
		if calls != 3 || iter.Pages() != 3 {
			t.Errorf("calls = %d, pages = %d, want 3", calls, iter.Pages())
		}
	})

	t.Run("handles empty result", func(t *testing.T) {
		fetch := func(_ context.Context, _ string) ([]string, string, error) {
			return nil, "", nil
		}

		got, err := NewPageIterator(fetch).All(context.Background())
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("got %v, want empty non-nil slice", got)
		}
	})

	t.Run("skips empty intermediate page", func(t *testing.T) {
		var calls int
		fetch := cursorPages(
			map[string][]int{"": {}, "b": {9}},
			map[string]string{"": "b"},
			&calls,
		)

		got, err := NewPageIterator(fetch).All(context.Background())
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(got) != 1 || got[0] != 9 {
			t.Errorf("got %v, want [9]", got)
		}
	})

	t.Run("propagates error", func(t *testing.T) {
		wantErr := errors.New("fetch failed")
		fetch := func(_ context.Context, _ string) ([]int, string, error) {
			return nil, "", wantErr
		}

		iter := NewPageIterator(fetch)
		_, err := iter.All(context.Background())
		if !errors.Is(err, wantErr) {
			t.Errorf("got error %v, want %v", err, wantErr)
		}
		if !errors.Is(iter.Err(), wantErr) {
			t.Errorf("Err() = %v, want %v", iter.Err(), wantErr)
		}
	})

	t.Run("Take fetches lazily", func(t *testing.T) {
		var calls int
		fetch := func(_ context.Context, cursor string) ([]int, string, error) {
			calls++
			n, _ := strconv.Atoi(cursor)
			return []int{n, n + 1, n + 2}, strconv.Itoa(n + 3), nil
		}

		iter := NewPageIterator(fetch)
		got, err := iter.Take(context.Background(), 3)
		if err != nil {
			t.Fatalf("Take() error = %v", err)
		}
		if len(got) != 3 {
			t.Errorf("got %d items, want 3", len(got))
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
		if iter.Fetched() != 3 {
			t.Errorf("Fetched() = %d, want 3", iter.Fetched())
		}
	})

	t.Run("ForEach processes all items", func(t *testing.T) {
		var calls int
		fetch := cursorPages(map[string][]int{"": {1, 2, 3}}, nil, &calls)

		var sum int
		err := NewPageIterator(fetch).ForEach(context.Background(), func(i int) error {
			sum += i
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach() error = %v", err)
		}
		if sum != 6 {
			t.Errorf("sum = %d, want 6", sum)
		}
	})

	t.Run("Items stops on break", func(t *testing.T) {
		var calls int
		fetch := cursorPages(
			map[string][]int{"": {1, 2}, "b": {3}},
			map[string]string{"": "b"},
			&calls,
		)

		var got []int
		for v, err := range NewPageIterator(fetch).Items(context.Background()) {
			if err != nil {
				t.Fatalf("Items() error = %v", err)
			}
			got = append(got, v)
			if v == 2 {
				break
			}
		}
		if len(got) != 2 || calls != 1 {
			t.Errorf("got %v after %d calls, want [1 2] after 1", got, calls)
		}
	})
}

func TestClient(t *testing.T) {
	t.Run("successful GET with query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("jql"); got != "project = KEY" {
				t.Errorf("jql = %q, want %q", got, "project = KEY")
			}
			if r.Header.Get(RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"name": "test"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL, ServiceName: "test"})

		var result map[string]string
		err := client.Get(context.Background(), "/search", map[string][]string{"jql": {"project = KEY"}}, &result)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if result["name"] != "test" {
			t.Errorf("got name = %q, want %q", result["name"], "test")
		}
	})

	t.Run("successful POST", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("got method %s, want POST", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["key"] != "value" {
				t.Errorf("got body key = %q, want %q", body["key"], "value")
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "123"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL, ServiceName: "test"})

		var result map[string]string
		err := client.Post(context.Background(), "/create", map[string]string{"key": "value"}, &result)
		if err != nil {
			t.Fatalf("Post() error = %v", err)
		}
		if result["id"] != "123" {
			t.Errorf("got id = %q, want %q", result["id"], "123")
		}
	})

	t.Run("handles 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL, ServiceName: "test"})

		err := client.Get(context.Background(), "/missing", nil, nil)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("got error %v, want ErrNotFound", err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Message != "Not found" {
			t.Errorf("got %v, want APIError with message", err)
		}
	})

	t.Run("does not retry 5xx", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			attempts++
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL, ServiceName: "test"})

		err := client.Get(context.Background(), "/test", nil, nil)
		if !errors.Is(err, ErrServerError) {
			t.Errorf("got error %v, want ErrServerError", err)
		}
		if attempts != 1 {
			t.Errorf("got %d attempts, want 1", attempts)
		}
	})

	t.Run("malformed JSON is a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL, ServiceName: "test"})

		var result map[string]any
		err := client.Get(context.Background(), "/test", nil, &result)
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("got error %v, want DecodeError", err)
		}
		if string(decodeErr.Body) != "<html>oops</html>" {
			t.Errorf("Body = %q", decodeErr.Body)
		}
	})

	t.Run("empty 2xx body leaves result untouched", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL, ServiceName: "test"})

		var result map[string]any
		if err := client.Post(context.Background(), "/create", map[string]string{}, &result); err != nil {
			t.Fatalf("Post() error = %v", err)
		}
		if result != nil {
			t.Errorf("result = %v, want nil", result)
		}
	})

	t.Run("error without message uses status text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>upstream</html>"))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL, ServiceName: "test"})

		err := client.Get(context.Background(), "/test", nil, nil)
		apiErr, ok := AsAPIError(err)
		if !ok {
			t.Fatalf("got %T, want *APIError", err)
		}
		if apiErr.Message != "" || apiErr.RequestID == "" {
			t.Errorf("APIError = %+v", apiErr)
		}
		want := "test API error (502) at /test [" + apiErr.RequestID + "]: Bad Gateway"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("nil result ignores body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{BaseURL: server.URL, ServiceName: "test"})
		if err := client.Post(context.Background(), "/noop", map[string]int{}, nil); err != nil {
			t.Errorf("Post() error = %v", err)
		}
	})

	t.Run("applies beforeRequest hook", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "test",
			BeforeRequest: func(req *http.Request) error {
				req.Header.Set("Authorization", "Bearer token123")
				return nil
			},
		})

		_ = client.Get(context.Background(), "/test", nil, nil)
		if gotAuth != "Bearer token123" {
			t.Errorf("got Authorization = %q, want %q", gotAuth, "Bearer token123")
		}
	})

	t.Run("beforeRequest error stops request", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			called = true
		}))
		defer server.Close()

		hookErr := errors.New("no token")
		client := NewClient(ClientConfig{
			BaseURL:       server.URL,
			ServiceName:   "test",
			BeforeRequest: func(*http.Request) error { return hookErr },
		})

		err := client.Get(context.Background(), "/test", nil, nil)
		if !errors.Is(err, hookErr) {
			t.Errorf("got error %v, want %v", err, hookErr)
		}
		if called {
			t.Error("request should not reach the server")
		}
	})

	t.Run("transport error is returned unchanged", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		client := NewClient(ClientConfig{BaseURL: url, ServiceName: "test"})
		err := client.Get(context.Background(), "/test", nil, nil)
		if err == nil {
			t.Fatal("expected transport error")
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) || IsDecodeError(err) {
			t.Errorf("transport error classified as %T", err)
		}
	})
}
