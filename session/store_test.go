package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eklerner/tdo/api"
	"github.com/eklerner/tdo/internal/state"
)

func newTestStore(t *testing.T) (*Store, *state.Store) {
	t.Helper()
	st := state.NewStore(t.TempDir())
	store, err := Open(st)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, st
}

func TestOpen_RestoresPersistedToken(t *testing.T) {
	dir := t.TempDir()
	st := state.NewStore(dir)
	if err := st.Save(&state.State{Token: "persisted"}); err != nil {
		t.Fatalf("seed state: %v", err)
	}

	store, err := Open(st)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Error("expected authenticated after restore")
	}
	if store.Token() != "persisted" {
		t.Errorf("token = %q", store.Token())
	}
}

func TestOpen_NoTokenNotAuthenticated(t *testing.T) {
	store, _ := newTestStore(t)
	if store.IsAuthenticated() {
		t.Error("fresh store should not be authenticated")
	}
}

func TestLogin_StoresAndPersistsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "abc"})
	}))
	defer server.Close()

	store, st := newTestStore(t)
	store.SetClient(api.NewClient(server.URL, store))

	if err := store.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if store.Token() != "abc" {
		t.Errorf("token = %q, want %q", store.Token(), "abc")
	}

	persisted, err := st.Load()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if persisted.Token != "abc" {
		t.Errorf("persisted token = %q", persisted.Token)
	}
}

func TestLogin_FailureSurfacesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer server.Close()

	store, _ := newTestStore(t)
	store.SetClient(api.NewClient(server.URL, store))

	err := store.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("message = %q, want %q", err.Error(), "Invalid credentials")
	}
	if store.IsAuthenticated() {
		t.Error("failed login must not establish a session")
	}
}

func TestLoginRegister_WithoutClient(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Error("expected login error before SetClient")
	}
	if err := store.Register(context.Background(), "a@b.c", "pw", ""); err == nil {
		t.Error("expected register error before SetClient")
	}
	if store.IsAuthenticated() {
		t.Error("expected no session")
	}
}

func TestRegister_DoesNotEstablishSession(t *testing.T) {
	var body map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "email": body["email"]})
	}))
	defer server.Close()

	store, _ := newTestStore(t)
	store.SetClient(api.NewClient(server.URL, store))

	if err := store.Register(context.Background(), "a@b.c", "pw", "#general"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if body["slack_channel"] != "#general" {
		t.Errorf("slack_channel = %q", body["slack_channel"])
	}
	if store.IsAuthenticated() {
		t.Error("register must not establish a session")
	}
}

func TestLogout_AlwaysClears(t *testing.T) {
	dir := t.TempDir()
	st := state.NewStore(dir)
	if err := st.Save(&state.State{Token: "abc"}); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	store, err := Open(st)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("expected unauthenticated after logout")
	}

	persisted, err := st.Load()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if persisted.Token != "" {
		t.Errorf("persisted token = %q, want cleared", persisted.Token)
	}

	// Logging out while already logged out still succeeds.
	if err := store.Logout(); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	dir := t.TempDir()
	st := state.NewStore(dir)
	if err := st.Save(&state.State{Token: "expired"}); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	store, err := Open(st)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	client := api.NewClient(server.URL, store)
	client.OnUnauthorized(store.Clear)
	store.SetClient(client)

	if _, err := client.GetTodo(context.Background(), 1); !api.IsUnauthorized(err) {
		t.Fatalf("err = %v, want unauthorized", err)
	}

	if store.IsAuthenticated() {
		t.Error("401 must tear down the session")
	}
	persisted, err := st.Load()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if persisted.Token != "" {
		t.Errorf("persisted token = %q, want cleared", persisted.Token)
	}
}

func TestSubscribe_NotifiedOnTokenChange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "abc"})
	}))
	defer server.Close()

	store, _ := newTestStore(t)
	store.SetClient(api.NewClient(server.URL, store))

	notified := 0
	store.Subscribe(func() { notified++ })

	if err := store.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	// No change, no notification.
	if err := store.Logout(); err != nil {
		t.Fatalf("repeat logout: %v", err)
	}

	if notified != 2 {
		t.Errorf("notified %d times, want 2", notified)
	}
}
