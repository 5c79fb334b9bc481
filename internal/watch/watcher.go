// Package watch polls a project until it reaches a terminal status.
package watch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/MimeLyc/rask-sdk-go/pkg/log"
	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

// ErrProjectFailed is returned with the final project when it ends in a
// failed status.
var ErrProjectFailed = errors.New("project failed")

// ProjectGetter fetches a project. *rask.Client implements it.
type ProjectGetter interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (*rask.Project, error)
}

// Watcher polls projects on a cron schedule.
type Watcher struct {
	client   ProjectGetter
	schedule cron.Schedule
	logger   *log.Logger
	onChange func(*rask.Project)
	group    singleflight.Group
}

type Option func(*Watcher)

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithSchedule replaces the parsed schedule.
func WithSchedule(s cron.Schedule) Option {
	return func(w *Watcher) {
		w.schedule = s
	}
}

// OnChange registers fn to run whenever the project status changes,
// including the first observed status.
func OnChange(fn func(*rask.Project)) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// New creates a watcher polling on the standard cron expression expr, which
// may also be a descriptor like "@every 30s".
func New(client ProjectGetter, expr string, opts ...Option) (*Watcher, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid watch schedule %q: %w", expr, err)
	}

	w := &Watcher{
		client:   client,
		schedule: schedule,
		logger:   log.GetLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

type outcome struct {
	project *rask.Project
	err     error
}

// Watch polls the project until its status is terminal and returns it.
// A failed project is returned together with ErrProjectFailed. Server and
// network errors are logged and retried on the next tick; any other error
// ends the watch.
func (w *Watcher) Watch(ctx context.Context, projectID uuid.UUID) (*rask.Project, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan outcome, 1)
	var (
		mu         sync.Mutex
		lastStatus rask.ProjectStatus
		seen       bool
	)

	finish := func(o outcome) {
		select {
		case done <- o:
		default:
		}
	}

	poll := func() {
		v, err, _ := w.group.Do(projectID.String(), func() (any, error) {
			return w.client.GetProject(ctx, projectID)
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if retryable(err) {
				w.logger.Warn("Poll project %s failed, retrying: %v", projectID, err)
				return
			}
			finish(outcome{err: err})
			return
		}

		project := v.(*rask.Project)
		mu.Lock()
		changed := !seen || project.Status != lastStatus
		seen, lastStatus = true, project.Status
		mu.Unlock()

		if changed {
			w.logger.Info("Project %s status: %s", projectID, project.Status)
			if w.onChange != nil {
				w.onChange(project)
			}
		}

		if project.Status.Terminal() {
			if project.Status.Failed() {
				finish(outcome{project: project, err: fmt.Errorf("%w: %s", ErrProjectFailed, project.Status)})
				return
			}
			finish(outcome{project: project})
		}
	}

	poll()
	select {
	case o := <-done:
		return o.project, o.err
	default:
	}

	c := cron.New()
	c.Schedule(w.schedule, cron.FuncJob(poll))
	c.Start()
	defer func() {
		cancel()
		<-c.Stop().Done()
	}()
	w.logger.Debug("Watching project %s, next poll at %s", projectID, w.schedule.Next(time.Now()).Format(time.RFC3339))

	select {
	case o := <-done:
		return o.project, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func retryable(err error) bool {
	if _, ok := rask.AsValidationError(err); ok {
		return false
	}
	if _, ok := rask.AsAuthenticationError(err); ok {
		return false
	}
	if apiErr, ok := rask.AsAPIError(err); ok {
		return apiErr.StatusCode >= http.StatusInternalServerError ||
			apiErr.StatusCode == http.StatusTooManyRequests
	}
	// transport errors
	return true
}
