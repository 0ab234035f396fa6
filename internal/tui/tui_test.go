package tui

import (
	"context"
	"testing"

	"github.com/eklerner/tdo/api"
	"github.com/eklerner/tdo/internal/state"
	"github.com/eklerner/tdo/session"
)

func newTestSessions(t *testing.T, token string) *session.Store {
	t.Helper()

	store := state.NewStore(t.TempDir())
	if token != "" {
		if err := store.Save(&state.State{Token: token}); err != nil {
			t.Fatalf("seed state: %v", err)
		}
	}

	sessions, err := session.Open(store)
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	return sessions
}

func newTestModel(t *testing.T, token string) model {
	t.Helper()

	sessions := newTestSessions(t, token)
	client := api.NewClient("127.0.0.1:1", sessions)
	client.OnUnauthorized(sessions.Clear)
	sessions.SetClient(client)
	return newModel(context.Background(), client, sessions)
}

func TestNewModelStartsOnLoginWithoutSession(t *testing.T) {
	m := newTestModel(t, "")

	if m.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", m.screen)
	}
}

func TestNewModelRestoresSessionToTodos(t *testing.T) {
	m := newTestModel(t, "token-1")

	if m.screen != screenTodos {
		t.Fatalf("expected todos screen, got %d", m.screen)
	}
}

func TestRouteGuardBlocksTodosWithoutSession(t *testing.T) {
	m := newTestModel(t, "")

	updated, _ := m.Update(navigateMsg{target: screenTodos})

	got := updated.(model)
	if got.screen != screenLogin {
		t.Fatalf("expected guard to keep login screen, got %d", got.screen)
	}
}

func TestRouteAllowsTodosWithSession(t *testing.T) {
	m := newTestModel(t, "token-1")
	m.screen = screenLogin

	updated, _ := m.Update(navigateMsg{target: screenTodos})

	got := updated.(model)
	if got.screen != screenTodos {
		t.Fatalf("expected todos screen, got %d", got.screen)
	}
}

func TestSessionTeardownForcesLogin(t *testing.T) {
	m := newTestModel(t, "token-1")
	if m.screen != screenTodos {
		t.Fatalf("expected todos screen, got %d", m.screen)
	}
	m.sessions.Clear()

	updated, _ := m.Update(sessionChangedMsg{authenticated: false})

	got := updated.(model)
	if got.screen != screenLogin {
		t.Fatalf("expected login screen after teardown, got %d", got.screen)
	}
	if got.login.errMsg == "" {
		t.Fatal("expected an expiry message on the login screen")
	}
}

func TestSessionTeardownIgnoredOffTodos(t *testing.T) {
	m := newTestModel(t, "")
	m.screen = screenRegister

	updated, _ := m.Update(sessionChangedMsg{authenticated: false})

	got := updated.(model)
	if got.screen != screenRegister {
		t.Fatalf("expected register screen to survive, got %d", got.screen)
	}
}

func TestLogoutRoutesToLogin(t *testing.T) {
	m := newTestModel(t, "token-1")

	updated, _ := m.Update(logoutMsg{})

	got := updated.(model)
	if got.screen != screenLogin {
		t.Fatalf("expected login screen after logout, got %d", got.screen)
	}
	if got.sessions.IsAuthenticated() {
		t.Fatal("expected session to be cleared")
	}
	if got.login.errMsg != "" {
		t.Fatalf("expected no error message after voluntary logout, got %q", got.login.errMsg)
	}
}

func TestScreenNames(t *testing.T) {
	tests := []struct {
		screen screen
		want   string
	}{
		{screenLogin, "login"},
		{screenRegister, "register"},
		{screenTodos, "todos"},
	}

	for _, tc := range tests {
		if got := screenName(tc.screen); got != tc.want {
			t.Errorf("screenName(%d) = %q, want %q", tc.screen, got, tc.want)
		}
	}
}
