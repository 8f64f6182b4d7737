package core

import "testing"

func TestLifecycle(t *testing.T) {
	var lc Lifecycle

	if lc.State() != StateUninitialized {
		t.Fatalf("initial state = %v", lc.State())
	}
	if err := lc.RequireReady(ModuleCluster); !IsNotReady(err) {
		t.Fatalf("uninitialized query should be NOT_READY, got %v", err)
	}

	lc.BeginTraining()
	if lc.State() != StateTraining {
		t.Fatalf("state after BeginTraining = %v", lc.State())
	}
	if err := lc.RequireReady(ModuleCluster); !IsNotReady(err) {
		t.Fatalf("training query should be NOT_READY, got %v", err)
	}

	lc.Publish()
	if err := lc.RequireReady(ModuleCluster); err != nil {
		t.Fatalf("ready query rejected: %v", err)
	}

	// 重训允许：Ready → Training → Ready
	lc.BeginTraining()
	if err := lc.RequireReady(ModuleCluster); !IsNotReady(err) {
		t.Fatal("retraining should gate queries again")
	}
	lc.Publish()
	if err := lc.RequireReady(ModuleCluster); err != nil {
		t.Fatalf("republish rejected: %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateUninitialized, "uninitialized"},
		{StateTraining, "training"},
		{StateReady, "ready"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
