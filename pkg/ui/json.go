package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// JSONReporter collects the run and writes it as a single document
type JSONReporter struct {
	types.NopReporter
	w    io.Writer
	opts Options
	err  error
}

var _ types.Reporter = (*JSONReporter)(nil)

type jsonError struct {
	Code    errors.ErrorCode       `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type jsonItem struct {
	types.ItemResult
	Error *jsonError `json:"error,omitempty"`
}

type jsonHook struct {
	types.HookResult
	Error *jsonError `json:"error,omitempty"`
}

type jsonGroup struct {
	Name      string            `json:"name"`
	Dir       string            `json:"dir"`
	Condition string            `json:"condition,omitempty"`
	Status    types.GroupStatus `json:"status"`
	Items     []jsonItem        `json:"items"`
	Error     *jsonError        `json:"error,omitempty"`
}

type jsonManifest struct {
	Path         string                  `json:"path"`
	Dir          string                  `json:"dir"`
	Aborted      bool                    `json:"aborted"`
	Error        *jsonError              `json:"error,omitempty"`
	Dependencies *types.DependencyReport `json:"dependencies,omitempty"`
	Pre          []jsonHook              `json:"pre,omitempty"`
	Groups       []jsonGroup             `json:"groups"`
	Post         []jsonHook              `json:"post,omitempty"`
}

type jsonRun struct {
	Mode      types.Mode     `json:"mode"`
	DryRun    bool           `json:"dryRun"`
	CheckOnly bool           `json:"checkOnly"`
	Failed    bool           `json:"failed"`
	Manifests []jsonManifest `json:"manifests"`
}

func toJSONError(err error) *jsonError {
	if err == nil {
		return nil
	}
	return &jsonError{
		Code:    errors.GetErrorCode(err),
		Message: Describe(err),
		Details: errors.GetErrorDetails(err),
	}
}

func toJSONHooks(results []types.HookResult) []jsonHook {
	if len(results) == 0 {
		return nil
	}
	out := make([]jsonHook, 0, len(results))
	for _, h := range results {
		out = append(out, jsonHook{HookResult: h, Error: toJSONError(h.Err)})
	}
	return out
}

func toJSONRun(result *types.RunResult, opts Options) jsonRun {
	run := jsonRun{
		Mode:      opts.Mode,
		DryRun:    opts.DryRun,
		CheckOnly: opts.CheckOnly,
		Failed:    result.Failed(),
		Manifests: make([]jsonManifest, 0, len(result.Manifests)),
	}
	for _, m := range result.Manifests {
		jm := jsonManifest{
			Path:         m.Path,
			Dir:          m.Dir,
			Aborted:      m.Aborted,
			Error:        toJSONError(m.Err),
			Dependencies: m.Dependencies,
			Pre:          toJSONHooks(m.Pre),
			Post:         toJSONHooks(m.Post),
			Groups:       make([]jsonGroup, 0, len(m.Groups)),
		}
		for _, g := range m.Groups {
			jg := jsonGroup{
				Name:      g.Name,
				Dir:       g.Dir,
				Condition: g.Condition,
				Status:    g.Status,
				Error:     toJSONError(g.Err),
				Items:     make([]jsonItem, 0, len(g.Items)),
			}
			for _, item := range g.Items {
				jg.Items = append(jg.Items, jsonItem{ItemResult: item, Error: toJSONError(item.Err)})
			}
			jm.Groups = append(jm.Groups, jg)
		}
		run.Manifests = append(run.Manifests, jm)
	}
	return run
}

// RunFinished writes the collected document
func (r *JSONReporter) RunFinished(result *types.RunResult) {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	r.err = enc.Encode(toJSONRun(result, r.opts))
}

// Err returns the error of the final write, if any
func (r *JSONReporter) Err() error {
	return r.err
}
