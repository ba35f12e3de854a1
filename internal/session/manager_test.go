package session

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	gateway := store.NewGateway(store.NewMemoryKV())
	return NewManager(gateway, nil, Delays{}, zap.NewNop())
}

func TestManagerCreateAndGet(t *testing.T) {
	manager := newTestManager(t)

	ctrl := manager.Create(context.Background())
	if ctrl.Snapshot().Phase != PhaseCheckInit {
		t.Fatal("zero boot delay should resolve the splash phase before Create returns")
	}

	got, ok := manager.Get(ctrl.ID())
	if !ok || got != ctrl {
		t.Fatalf("Get(%q) = %v, %v", ctrl.ID(), got, ok)
	}
	if _, ok := manager.Get("missing"); ok {
		t.Fatal("Get of unknown id reported a session")
	}
}

func TestManagerDrop(t *testing.T) {
	manager := newTestManager(t)
	ctrl := manager.Create(context.Background())

	manager.Drop(ctrl.ID())
	if _, ok := manager.Get(ctrl.ID()); ok {
		t.Fatal("dropped session still registered")
	}
	if got := manager.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}

	// Dropping an unknown id is harmless.
	manager.Drop("missing")
}

func TestManagerDropAll(t *testing.T) {
	manager := newTestManager(t)
	for i := 0; i < 3; i++ {
		manager.Create(context.Background())
	}
	if got := manager.Count(); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}

	manager.DropAll()
	if got := manager.Count(); got != 0 {
		t.Fatalf("Count after DropAll = %d, want 0", got)
	}
}
