package entity

import "time"

type StageResult struct {
	Stage  string      `json:"stage"`
	Agent  string      `json:"agent"`
	Status StageStatus `json:"status"`
	Output string      `json:"output"`
	Err    error       `json:"-"`
}

func (s StageResult) Failed() bool {
	return s.Status == StageStatusFailed || s.Status == StageStatusSkipped
}

// PipelineResult holds one entry per declared stage, in declaration order.
type PipelineResult struct {
	RunID      string        `json:"run_id"`
	Workflow   string        `json:"workflow"`
	Status     RunStatus     `json:"status"`
	Stages     []StageResult `json:"stages"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

func (r *PipelineResult) Keys() []string {
	keys := make([]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		keys = append(keys, s.Stage)
	}
	return keys
}

func (r *PipelineResult) Get(stage string) (StageResult, bool) {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s, true
		}
	}
	return StageResult{}, false
}

func (r *PipelineResult) Output(stage string) string {
	s, _ := r.Get(stage)
	return s.Output
}

func (r *PipelineResult) Map() map[string]string {
	m := make(map[string]string, len(r.Stages))
	for _, s := range r.Stages {
		m[s.Stage] = s.Output
	}
	return m
}

func (r *PipelineResult) Succeeded() bool {
	for _, s := range r.Stages {
		if s.Failed() {
			return false
		}
	}
	return true
}
