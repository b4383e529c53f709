package component

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	*m.events = append(*m.events, "start:"+m.name)
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	*m.events = append(*m.events, "stop:"+m.name)
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health { return m.health }

func TestRegistry_Order(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	for _, name := range []string{"database", "http"} {
		if err := r.Register(&mockComponent{name: name, events: &events}); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := "start:database,start:http,stop:http,stop:database"
	if got := strings.Join(events, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "database", events: &events})
	if err := r.Register(&mockComponent{name: "database", events: &events}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistry_StartFailureStopsStarted(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "database", events: &events})
	_ = r.Register(&mockComponent{name: "http", startErr: errors.New("port in use"), events: &events})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "port in use") {
		t.Fatalf("expected start error, got %v", err)
	}
	want := "start:database,start:http,stop:database"
	if got := strings.Join(events, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestRegistry_StopErrorsAreJoined(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "a", stopErr: errors.New("a broke"), events: &events})
	_ = r.Register(&mockComponent{name: "b", stopErr: errors.New("b broke"), events: &events})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "a broke") || !strings.Contains(err.Error(), "b broke") {
		t.Fatalf("expected both stop errors, got %v", err)
	}
}

func TestRegistry_HealthAndLookup(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	db := &mockComponent{name: "database", health: Health{Name: "database", Status: StatusHealthy}, events: &events}
	_ = r.Register(db)
	_ = r.Register(&mockComponent{name: "http", health: Health{Name: "http", Status: StatusDegraded}, events: &events})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if Overall(results) != StatusDegraded {
		t.Errorf("expected degraded, got %s", Overall(results))
	}
	if all := r.All(); len(all) != 2 || all[0] != db {
		t.Error("expected All to return both components in registration order")
	}
	if got := r.Get("database"); got != db {
		t.Errorf("expected Get to return the database component, got %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("expected nil for an unknown name, got %v", got)
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		in   []Health
		want HealthStatus
	}{
		{nil, StatusHealthy},
		{[]Health{{Status: StatusHealthy}}, StatusHealthy},
		{[]Health{{Status: StatusDegraded}, {Status: StatusUnhealthy}}, StatusUnhealthy},
	}
	for _, tt := range tests {
		if got := Overall(tt.in); got != tt.want {
			t.Errorf("Overall(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRegistry_StartAllSkipsRunning(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "database", events: &events})
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	_ = r.Register(&mockComponent{name: "http", events: &events})
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("second StartAll: %v", err)
	}

	want := "start:database,start:http"
	if got := strings.Join(events, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
