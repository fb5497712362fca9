// Package timer runs the pomodoro-style countdown and converts finished
// runs into logged study sessions.
package timer

import (
	"errors"
	"math"
	"sync"
	"tatico/internal/models"
	"tatico/internal/providers"
	"tatico/internal/schedule"
	"tatico/internal/services"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Sessions that would round to zero minutes and were not run to completion
// are treated as accidental starts and discarded. Rotation only advances
// for natural finishes or runs longer than this, so short manual finishes
// cannot game the subject cycle.
const rotationThresholdMinutes = 10

var (
	ErrNotIdle    = errors.New("timer already started")
	ErrNotRunning = errors.New("timer not running")
)

// Controller is the countdown state machine. The one-second tick goroutine
// is tied to the RUNNING state and is reliably stopped on every exit from
// it, so no orphaned ticker can keep mutating state. The wake lock is held
// exactly while running and not paused.
type Controller struct {
	mu       sync.Mutex
	service  services.TrackerServiceInterface
	wakeLock providers.WakeLockInterface
	logger   providers.Logger

	state        State
	totalSeconds int
	remaining    int
	stopTick     chan struct{}
	tickInterval time.Duration
}

func NewController(service services.TrackerServiceInterface, wakeLock providers.WakeLockInterface, logger providers.Logger) *Controller {
	return &Controller{
		service:      service,
		wakeLock:     wakeLock,
		logger:       logger,
		state:        StateIdle,
		tickInterval: time.Second,
	}
}

// Start begins a countdown over the configured pomodoro duration.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle && c.state != StateFinished {
		return ErrNotIdle
	}

	c.totalSeconds = c.service.PomodoroMinutes() * 60
	c.remaining = c.totalSeconds
	c.state = StateRunning
	c.wakeLock.Acquire()
	c.startTickLocked()
	c.logger.Infof(providers.TypeTimer, "Session started: %ds on %s", c.totalSeconds, c.currentSubjectLocked())
	return nil
}

// Toggle pauses a running countdown or resumes a paused one. No time
// elapses while paused.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateRunning:
		c.state = StatePaused
		c.stopTickLocked()
		c.wakeLock.Release()
	case StatePaused:
		c.state = StateRunning
		c.wakeLock.Acquire()
		c.startTickLocked()
	default:
		return ErrNotRunning
	}
	return nil
}

// Reset returns the controller to IDLE with the full configured duration
// restored. Valid from any state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTickLocked()
	c.wakeLock.Release()
	c.state = StateIdle
	c.totalSeconds = c.service.PomodoroMinutes() * 60
	c.remaining = c.totalSeconds
}

// Finish ends the session manually. Runs that round to under one minute
// are discarded with no record; anything else is logged under the current
// rotation subject.
func (c *Controller) Finish() (*models.StudySession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning && c.state != StatePaused {
		return nil, ErrNotRunning
	}
	return c.finalizeLocked(false)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Remaining reports the seconds left on the countdown.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Close stops the tick goroutine. For teardown paths that bypass Finish.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTickLocked()
	c.wakeLock.Release()
}

func (c *Controller) startTickLocked() {
	stop := make(chan struct{})
	c.stopTick = stop
	interval := c.tickInterval

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !c.tick(stop) {
					return
				}
			}
		}
	}()
}

func (c *Controller) stopTickLocked() {
	if c.stopTick != nil {
		close(c.stopTick)
		c.stopTick = nil
	}
}

// tick consumes one second of countdown. Returns false once this goroutine
// should stop, either because it was superseded or the countdown hit zero.
func (c *Controller) tick(stop chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopTick != stop || c.state != StateRunning {
		return false
	}

	c.remaining--
	if c.remaining > 0 {
		return true
	}

	c.remaining = 0
	if _, err := c.finalizeLocked(true); err != nil {
		c.logger.Errorf(providers.TypeTimer, "Failed to log finished session: %s", err)
	}
	return false
}

// finalizeLocked converts the elapsed countdown into a study session.
// natural marks a countdown that reached zero on its own.
func (c *Controller) finalizeLocked(natural bool) (*models.StudySession, error) {
	c.stopTickLocked()
	c.wakeLock.Release()

	elapsedSeconds := c.totalSeconds - c.remaining
	minutes := int(math.Round(float64(elapsedSeconds) / 60))

	if minutes < 1 && !natural {
		// Accidental start, nothing worth recording.
		c.state = StateIdle
		c.remaining = c.totalSeconds
		c.logger.Debugf(providers.TypeTimer, "Discarding %ds session", elapsedSeconds)
		return nil, nil
	}
	if minutes < 1 {
		minutes = 1
	}

	subject := c.currentSubjectLocked()
	session, err := c.service.LogStudySession(services.StudySessionInput{
		Subject:         subject,
		DurationMinutes: minutes,
	})
	if err != nil {
		c.state = StateIdle
		c.remaining = c.totalSeconds
		return nil, err
	}

	if natural || minutes > rotationThresholdMinutes {
		c.service.AdvanceSubject()
	}

	c.state = StateFinished
	c.logger.Infof(providers.TypeTimer, "Session finished: %d min on %s", minutes, subject)
	return &session, nil
}

func (c *Controller) currentSubjectLocked() string {
	return schedule.Subject(c.service.SubjectIndex())
}
