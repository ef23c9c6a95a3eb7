package types

// Action is what the reconciler did (or would do under dry-run) for one target
type Action string

const (
	ActionNone     Action = "none"
	ActionLink     Action = "link"
	ActionDownload Action = "download"
	ActionClone    Action = "clone"
	ActionRemove   Action = "remove"
)

// ItemResult is the outcome of one install item. Resolved is the absolute
// path of a local source, or the URL otherwise.
type ItemResult struct {
	Group       string `json:"group"`
	Source      string `json:"source"`
	Resolved    string `json:"resolved"`
	Destination string `json:"destination"`
	Action      Action `json:"action"`
	Acted       bool   `json:"acted"`
	DryRun      bool   `json:"dryRun"`
	Err         error  `json:"-"`
}

// Failed reports whether the item ended in an error
func (r ItemResult) Failed() bool {
	return r.Err != nil
}

// GroupStatus summarizes one installation group
type GroupStatus string

const (
	GroupApplied     GroupStatus = "applied"
	GroupNothingDone GroupStatus = "nothing_done"
	GroupSkipped     GroupStatus = "skipped"
	GroupFailed      GroupStatus = "failed"
)

// GroupResult is the outcome of one installation group
type GroupResult struct {
	Name      string       `json:"name"`
	Dir       string       `json:"dir"`
	Condition string       `json:"condition,omitempty"`
	Status    GroupStatus  `json:"status"`
	Items     []ItemResult `json:"items"`
	Err       error        `json:"-"`
}

// DependencyResult is the probe outcome for a single executable
type DependencyResult struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
}

// DependencyReport holds every probe of a manifest in declared order,
// mandatory dependencies first
type DependencyReport struct {
	Results []DependencyResult `json:"results"`
	OK      bool               `json:"ok"`
}

// Missing returns the names of the mandatory dependencies that were not found
func (r DependencyReport) Missing() []string {
	var missing []string
	for _, res := range r.Results {
		if !res.Optional && !res.Found {
			missing = append(missing, res.Name)
		}
	}
	return missing
}

// HookResult is the outcome of one pre/post command
type HookResult struct {
	Phase    HookPhase `json:"phase"`
	Index    int       `json:"index"`
	Command  string    `json:"command"`
	ExitCode int       `json:"exitCode"`
	Skipped  bool      `json:"skipped"`
	Err      error     `json:"-"`
}

// ManifestResult is everything that happened while processing one manifest
type ManifestResult struct {
	Path         string            `json:"path"`
	Dir          string            `json:"dir"`
	Mode         Mode              `json:"mode"`
	DryRun       bool              `json:"dryRun"`
	Dependencies *DependencyReport `json:"dependencies,omitempty"`
	Pre          []HookResult      `json:"pre,omitempty"`
	Groups       []GroupResult     `json:"groups,omitempty"`
	Post         []HookResult      `json:"post,omitempty"`
	Aborted      bool              `json:"aborted"`
	Err          error             `json:"-"`
}

// Failed reports whether the manifest hit a per-manifest failure: a load
// error, unmet mandatory dependencies or a strict pre hook
func (m *ManifestResult) Failed() bool {
	return m.Err != nil
}

// RunResult aggregates every processed manifest
type RunResult struct {
	Manifests []*ManifestResult `json:"manifests"`
}

// Failed reports whether any manifest failed
func (r *RunResult) Failed() bool {
	for _, m := range r.Manifests {
		if m.Failed() {
			return true
		}
	}
	return false
}
