package daemon

import (
	"context"
	"dropdate/internal/auth"
	"dropdate/internal/config"
	"dropdate/internal/logger"
	"dropdate/internal/metrics"
	"dropdate/internal/model"
	"dropdate/internal/renamer"
	"fmt"
	"time"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"go.uber.org/zap"
)

type TokenRefresher interface {
	Refresh(ctx context.Context, cred *auth.Credential) error
}

type Job struct {
	loadConfig   func() (*config.Config, error)
	newClient    func(cred *auth.Credential) files.Client
	newRefresher func(tokenURL string) TokenRefresher
	state        *State
}

type JobOption func(*Job)

func WithConfigLoader(load func() (*config.Config, error)) JobOption {
	return func(j *Job) {
		j.loadConfig = load
	}
}

func WithClientFactory(newClient func(cred *auth.Credential) files.Client) JobOption {
	return func(j *Job) {
		j.newClient = newClient
	}
}

func WithRefresherFactory(newRefresher func(tokenURL string) TokenRefresher) JobOption {
	return func(j *Job) {
		j.newRefresher = newRefresher
	}
}

func NewJob(state *State, opts ...JobOption) *Job {
	j := &Job{
		loadConfig: config.Load,
		newClient:  auth.NewClient,
		newRefresher: func(tokenURL string) TokenRefresher {
			return auth.NewRefresher(tokenURL)
		},
		state: state,
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

// Run performs one timer firing. Config is read fresh every time, so a
// refreshed access token lives only until the run ends. Errors are logged
// and recorded, never returned.
func (j *Job) Run(ctx context.Context, pastDue bool) (result model.RunResult) {
	result.StartedAt = time.Now()
	result.PastDue = pastDue

	if pastDue {
		logger.Log.Info("timer is past due")
	}
	logger.Log.Info("scheduled run started")

	defer func() {
		if rec := recover(); rec != nil {
			result.Outcome = model.OutcomeUnexpected
			result.Err = fmt.Errorf("unexpected error: %v", rec)
			logger.Log.Error("unexpected error",
				zap.Any("panic", rec))
		}

		result.Enter(model.StateDone)
		result.FinishedAt = time.Now()

		metrics.RecordRun(string(result.Outcome))
		if j.state != nil {
			j.state.Record(result)
		}

		logger.Log.Info("scheduled run completed",
			zap.String("outcome", string(result.Outcome)),
			zap.Int("renamed", result.Report.Renamed),
			zap.Int("skipped", result.Report.Skipped),
			zap.Duration("took", result.FinishedAt.Sub(result.StartedAt)))
	}()

	cfg, err := j.loadConfig()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Log.Error("invalid configuration", zap.Error(err))
		result.Outcome = model.OutcomeConfigError
		result.Err = err
		return result
	}

	cred := auth.NewCredential(cfg.Dropbox)
	r := renamer.New(cfg.FolderPath)

	result.Enter(model.StateListing)
	report, err := r.Run(j.newClient(cred))
	result.Report = report
	if err == nil {
		result.Outcome = model.OutcomeOK
		return result
	}

	if !auth.IsAuthError(err) {
		j.fail(&result, err)
		return result
	}

	result.Enter(model.StateAuthError)
	j.fail(&result, err)

	if !auth.IsExpiredToken(err) || !cred.CanRefresh() {
		return result
	}

	result.Enter(model.StateRefreshing)
	if err := j.newRefresher(cfg.TokenURL).Refresh(ctx, cred); err != nil {
		metrics.RecordRefresh(false)
		result.Outcome = model.OutcomeRefreshFailed
		result.Err = err
		return result
	}

	metrics.RecordRefresh(true)
	result.Refreshed = true

	// single retry; an error here ends the run even if the token expired again
	result.Enter(model.StateRetryListing)
	result.Retried = true

	retry, err := r.Run(j.newClient(cred))
	result.Report = result.Report.Add(retry)
	if err != nil {
		j.fail(&result, err)
		return result
	}

	result.Outcome = model.OutcomeOK
	result.Err = nil
	return result
}

func (j *Job) fail(result *model.RunResult, err error) {
	result.Err = err

	if auth.IsAuthError(err) {
		result.Outcome = model.OutcomeAuthError
		logger.Log.Error("dropbox auth error", zap.Error(err))
		return
	}

	result.Outcome = model.OutcomeAPIError
	logger.Log.Error("dropbox api error", zap.Error(err))
}
