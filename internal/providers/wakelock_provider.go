package providers

// WakeLockInterface models the host's display-sleep-prevention resource.
// It is held exactly while the study timer is running and not paused.
type WakeLockInterface interface {
	Acquire()
	Release()
}

// LoggedWakeLock is the default implementation: the process itself cannot
// keep a screen awake, so it only records the transitions for the host
// shell to act on.
type LoggedWakeLock struct {
	logger Logger
	held   bool
}

func NewWakeLockProvider(logger Logger) WakeLockInterface {
	return &LoggedWakeLock{logger: logger}
}

func (w *LoggedWakeLock) Acquire() {
	if w.held {
		return
	}
	w.held = true
	w.logger.Debugf(TypeTimer, "Wake lock acquired")
}

func (w *LoggedWakeLock) Release() {
	if !w.held {
		return
	}
	w.held = false
	w.logger.Debugf(TypeTimer, "Wake lock released")
}
