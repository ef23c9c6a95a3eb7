package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock for shell.Runner
type MockRunner struct {
	mock.Mock
}

// Run records the call and returns the configured exit code and error
func (m *MockRunner) Run(ctx context.Context, dir, command string) (int, error) {
	args := m.Called(ctx, dir, command)
	return args.Int(0), args.Error(1)
}

// Event is one call received by a RecordingReporter
type Event struct {
	Kind string
	Data interface{}
}

// RecordingReporter implements types.Reporter by appending every event
type RecordingReporter struct {
	mu     sync.Mutex
	Events []Event
}

var _ types.Reporter = (*RecordingReporter)(nil)

func (r *RecordingReporter) add(kind string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Event{Kind: kind, Data: data})
}

// Kinds returns the event kinds in the order they were received
func (r *RecordingReporter) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// Items returns every ItemResult received
func (r *RecordingReporter) Items() []types.ItemResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []types.ItemResult
	for _, e := range r.Events {
		if item, ok := e.Data.(types.ItemResult); ok {
			items = append(items, item)
		}
	}
	return items
}

func (r *RecordingReporter) HookStarted(phase types.HookPhase, index int, command string) {
	r.add("hook_started", command)
}

func (r *RecordingReporter) HookFinished(result types.HookResult) {
	r.add("hook_finished", result)
}

func (r *RecordingReporter) ReconcileStarted(mode types.Mode) {
	r.add("reconcile_started", mode)
}

func (r *RecordingReporter) GroupStarted(name string) {
	r.add("group_started", name)
}

func (r *RecordingReporter) ItemFinished(result types.ItemResult) {
	r.add("item_finished", result)
}

func (r *RecordingReporter) GroupFinished(result types.GroupResult) {
	r.add("group_finished", result)
}

func (r *RecordingReporter) ManifestStarted(path string) {
	r.add("manifest_started", path)
}

func (r *RecordingReporter) DependenciesChecked(report types.DependencyReport) {
	r.add("dependencies_checked", report)
}

func (r *RecordingReporter) ManifestFinished(result *types.ManifestResult) {
	r.add("manifest_finished", result)
}

func (r *RecordingReporter) RunFinished(result *types.RunResult) {
	r.add("run_finished", result)
}
