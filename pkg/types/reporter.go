package types

// HookObserver receives hook progress as commands run
type HookObserver interface {
	HookStarted(phase HookPhase, index int, command string)
	HookFinished(result HookResult)
}

// GroupObserver receives reconciliation progress as groups are processed
type GroupObserver interface {
	ReconcileStarted(mode Mode)
	GroupStarted(name string)
	ItemFinished(result ItemResult)
	GroupFinished(result GroupResult)
}

// Reporter receives every event of a run in order. Implementations render
// them (terminal, text) or collect them (JSON).
type Reporter interface {
	HookObserver
	GroupObserver

	ManifestStarted(path string)
	DependenciesChecked(report DependencyReport)
	ManifestFinished(result *ManifestResult)
	RunFinished(result *RunResult)
}

// NopReporter discards every event
type NopReporter struct{}

func (NopReporter) HookStarted(HookPhase, int, string)      {}
func (NopReporter) HookFinished(HookResult)                 {}
func (NopReporter) ReconcileStarted(Mode)                   {}
func (NopReporter) GroupStarted(string)                     {}
func (NopReporter) ItemFinished(ItemResult)                 {}
func (NopReporter) GroupFinished(GroupResult)               {}
func (NopReporter) ManifestStarted(string)                  {}
func (NopReporter) DependenciesChecked(DependencyReport)    {}
func (NopReporter) ManifestFinished(*ManifestResult)        {}
func (NopReporter) RunFinished(*RunResult)                  {}

var _ Reporter = NopReporter{}
