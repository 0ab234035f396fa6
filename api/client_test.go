package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eklerner/tdo/todo"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("abc"))
	if _, err := client.ListTodos(context.Background(), todo.Filter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got != "Bearer abc" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer abc")
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var got string
	var present bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken(""))
	if _, err := client.ListTodos(context.Background(), todo.Filter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if present {
		t.Errorf("Authorization header should be absent, got %q", got)
	}
}

func TestClient_Token_FormEncoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "a@b.c" || r.PostForm.Get("password") != "pw" {
			t.Errorf("form = %v", r.PostForm)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "abc"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken(""))
	token, err := client.Token(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "abc" {
		t.Errorf("token = %q, want %q", token, "abc")
	}
}

func TestClient_Token_DetailExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken(""))
	_, err := client.Token(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("message = %q, want %q", err.Error(), "Invalid credentials")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestClient_FallbackMessageWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("abc"))
	_, err := client.ListTodos(context.Background(), todo.Filter{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Failed to fetch todos" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestClient_UnauthorizedHookFiresForAnyOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("expired"))
	fired := 0
	client.OnUnauthorized(func() { fired++ })

	ctx := context.Background()
	if _, err := client.ListTodos(ctx, todo.Filter{}); !IsUnauthorized(err) {
		t.Errorf("list err = %v", err)
	}
	if err := client.DeleteTodo(ctx, 9); !IsUnauthorized(err) {
		t.Errorf("delete err = %v", err)
	}
	if _, err := client.UpdateTodo(ctx, 9, todo.Update{}); !IsUnauthorized(err) {
		t.Errorf("update err = %v", err)
	}

	if fired != 3 {
		t.Errorf("hook fired %d times, want 3", fired)
	}
}

func TestClient_ListFiltersInQuery(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("abc"))
	filter := todo.Filter{Description: "milk", Payload: "priority:high"}
	if _, err := client.ListTodos(context.Background(), filter); err != nil {
		t.Fatalf("list: %v", err)
	}
	if query != "desc_search=milk&payload_search=priority%3Ahigh" {
		t.Errorf("query = %q", query)
	}
}

func TestClient_CreateOmitsEmptyPayload(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(todo.Todo{ID: 1, Description: "x"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("abc"))
	request := CreateTodoRequest{
		Description: "x",
		DueDate:     time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
	if _, err := client.CreateTodo(context.Background(), request); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := body["payload"]; ok {
		t.Errorf("payload key should be absent, body = %v", body)
	}
}

func TestClient_DeleteHandlesEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("abc"))
	if err := client.DeleteTodo(context.Background(), 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestClient_UpdateSendsPatch(t *testing.T) {
	var method string
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(todo.Todo{ID: 7, Description: "x", Completed: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("abc"))
	item, err := client.UpdateTodo(context.Background(), 7, todo.Toggle(todo.Todo{ID: 7}))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if method != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", method)
	}
	if len(body) != 1 || body["completed"] != true {
		t.Errorf("body = %v, want only completed:true", body)
	}
	if !item.Completed {
		t.Error("returned item should replace local state verbatim")
	}
}

func TestClient_TransportErrorUsesFallback(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", staticToken(""))
	_, err := client.ListTodos(context.Background(), todo.Filter{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Failed to fetch todos" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestNewClient_NormalizesAddress(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"localhost:8000", "http://localhost:8000"},
		{"http://localhost:8000/api/", "http://localhost:8000/api"},
		{"https://todo.example.com", "https://todo.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			client := NewClient(tt.addr, nil)
			if client.baseURL != tt.want {
				t.Errorf("baseURL = %q, want %q", client.baseURL, tt.want)
			}
		})
	}
}
