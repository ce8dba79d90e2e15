package model

import "time"

type RunState string

const (
	StateListing      RunState = "LISTING"
	StateAuthError    RunState = "AUTH_ERROR"
	StateRefreshing   RunState = "REFRESHING"
	StateRetryListing RunState = "RETRY_LISTING"
	StateDone         RunState = "DONE"
)

type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeConfigError   Outcome = "config_error"
	OutcomeAuthError     Outcome = "auth_error"
	OutcomeRefreshFailed Outcome = "refresh_failed"
	OutcomeAPIError      Outcome = "api_error"
	OutcomeUnexpected    Outcome = "unexpected_error"
)

// RunResult describes one timer firing. Only the latest one is kept, in
// memory, for the status endpoint.
type RunResult struct {
	StartedAt  time.Time
	FinishedAt time.Time
	PastDue    bool
	Path       []RunState
	Outcome    Outcome
	Refreshed  bool
	Retried    bool
	Report     RenameReport
	Err        error
}

func (r *RunResult) Enter(state RunState) {
	r.Path = append(r.Path, state)
}

func (r *RunResult) State() RunState {
	if len(r.Path) == 0 {
		return ""
	}

	return r.Path[len(r.Path)-1]
}
