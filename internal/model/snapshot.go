package model

import "time"

type RunSnapshot struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	PastDue    bool         `json:"past_due"`
	Path       []RunState   `json:"path"`
	Outcome    Outcome      `json:"outcome"`
	Refreshed  bool         `json:"refreshed"`
	Retried    bool         `json:"retried"`
	Report     RenameReport `json:"report"`
	Error      string       `json:"error,omitempty"`
}

func (r *RunResult) Snapshot() RunSnapshot {
	snap := RunSnapshot{
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		PastDue:    r.PastDue,
		Path:       append([]RunState(nil), r.Path...),
		Outcome:    r.Outcome,
		Refreshed:  r.Refreshed,
		Retried:    r.Retried,
		Report:     r.Report,
	}

	if r.Err != nil {
		snap.Error = r.Err.Error()
	}

	return snap
}
