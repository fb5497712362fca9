package services

import (
	"errors"
	"sync"
	"tatico/internal/models"
	"tatico/internal/providers"
	"tatico/internal/structures"
	"time"

	"github.com/gookit/validate"
	"go.uber.org/atomic"
)

var ErrNoExercises = errors.New("workout has no named exercises")

// WorkoutInput is a workout save request. Rows with empty names are
// dropped; at least one named exercise must remain.
type WorkoutInput struct {
	Type      string `validate:"required|in:REST,STRENGTH,CARDIO,RUN"`
	Notes     string
	Exercises []models.Exercise
}

type StudySessionInput struct {
	Subject         string `validate:"required"`
	DurationMinutes int    `validate:"required|int|min:1"`
}

type QuestionBatchInput struct {
	Subject string `validate:"required"`
	Total   int    `validate:"required|int|min:1"`
	Correct int    `validate:"int|min:0|lteField:Total"`
}

type ConfigInput struct {
	ExamDate        string `validate:"required|date"`
	WeeklyGoalHours int    `validate:"required|int|min:1"`
	PomodoroMinutes int    `validate:"required|int|min:1"`
}

// TrackerServiceInterface owns the application state bag. The in-memory
// state is a cache of the persistent store, kept in sync by writing through
// on every mutation. Histories are append-only: no edit or delete
// operations exist short of ResetAll.
type TrackerServiceInterface interface {
	LogWorkout(in WorkoutInput) (models.WorkoutLog, error)
	LogStudySession(in StudySessionInput) (models.StudySession, error)
	LogQuestionBatch(in QuestionBatchInput) (models.QuestionLog, error)
	UpdateConfig(in ConfigInput) error
	AdvanceSubject() int
	SetStreak(count int, lastOpen time.Time)
	ResetAll()

	ExamDate() string
	WeeklyGoalHours() int
	PomodoroMinutes() int
	SubjectIndex() int
	StreakCount() int
	LastOpen() time.Time
	WorkoutHistory() []models.WorkoutLog
	StudyHistory() []models.StudySession
	QuestionHistory() []models.QuestionLog
	Counts() (workouts, sessions, batches int)
	Revision() uint64
}

type TrackerService struct {
	mu    sync.Mutex
	conf  *structures.Config
	store providers.StoreProviderInterface
	now   func() time.Time
	rev   atomic.Uint64

	examDate        string
	weeklyGoalHours int
	pomodoroMinutes int
	subjectIndex    int
	streak          int
	lastOpen        time.Time
	workouts        []models.WorkoutLog
	sessions        []models.StudySession
	batches         []models.QuestionLog
}

func NewTrackerService(conf *structures.Config, store providers.StoreProviderInterface) TrackerServiceInterface {
	ts := &TrackerService{
		conf:  conf,
		store: store,
		now:   time.Now,
	}
	ts.loadState()
	return ts
}

// loadState hydrates the state bag from the store, falling back to the
// configured seed values key by key.
func (ts *TrackerService) loadState() {
	ts.examDate = ts.conf.Tracker.ExamDate
	ts.weeklyGoalHours = ts.conf.Tracker.WeeklyGoalHours
	ts.pomodoroMinutes = ts.conf.Tracker.PomodoroMinutes
	ts.subjectIndex = 0
	ts.streak = 0
	ts.lastOpen = ts.now()
	ts.workouts = nil
	ts.sessions = nil
	ts.batches = nil

	ts.store.Get(models.KeyExamDate, &ts.examDate)
	ts.store.Get(models.KeyWeeklyGoal, &ts.weeklyGoalHours)
	ts.store.Get(models.KeyPomodoro, &ts.pomodoroMinutes)
	ts.store.Get(models.KeySubjectIndex, &ts.subjectIndex)
	ts.store.Get(models.KeyStreak, &ts.streak)
	ts.store.Get(models.KeyWorkoutHistory, &ts.workouts)
	ts.store.Get(models.KeyStudyHistory, &ts.sessions)
	ts.store.Get(models.KeyQuestionHistory, &ts.batches)

	var lastOpen string
	if ts.store.Get(models.KeyLastOpen, &lastOpen) {
		if t, err := time.Parse(time.RFC3339, lastOpen); err == nil {
			ts.lastOpen = t
		}
	} else {
		ts.store.Set(models.KeyLastOpen, ts.lastOpen.Format(time.RFC3339))
	}
}

func validateInput(in any) error {
	v := validate.Struct(in)
	if !v.Validate() {
		return errors.New(v.Errors.One())
	}
	return nil
}

func (ts *TrackerService) LogWorkout(in WorkoutInput) (models.WorkoutLog, error) {
	if err := validateInput(&in); err != nil {
		return models.WorkoutLog{}, err
	}

	named := make([]models.Exercise, 0, len(in.Exercises))
	for _, ex := range in.Exercises {
		if ex.Name != "" {
			named = append(named, ex)
		}
	}
	if len(named) == 0 {
		return models.WorkoutLog{}, ErrNoExercises
	}

	now := ts.now()
	log := models.WorkoutLog{
		ID:        models.NewRecordID(now),
		Date:      now,
		Type:      in.Type,
		Notes:     in.Notes,
		Exercises: named,
	}

	ts.mu.Lock()
	ts.workouts = append([]models.WorkoutLog{log}, ts.workouts...)
	ts.store.Set(models.KeyWorkoutHistory, ts.workouts)
	ts.mu.Unlock()
	ts.rev.Inc()
	return log, nil
}

func (ts *TrackerService) LogStudySession(in StudySessionInput) (models.StudySession, error) {
	if err := validateInput(&in); err != nil {
		return models.StudySession{}, err
	}

	now := ts.now()
	session := models.StudySession{
		ID:              models.NewRecordID(now),
		Date:            now,
		Subject:         in.Subject,
		DurationMinutes: in.DurationMinutes,
	}

	ts.mu.Lock()
	ts.sessions = append([]models.StudySession{session}, ts.sessions...)
	ts.store.Set(models.KeyStudyHistory, ts.sessions)
	ts.mu.Unlock()
	ts.rev.Inc()
	return session, nil
}

func (ts *TrackerService) LogQuestionBatch(in QuestionBatchInput) (models.QuestionLog, error) {
	if err := validateInput(&in); err != nil {
		return models.QuestionLog{}, err
	}

	now := ts.now()
	log := models.QuestionLog{
		ID:      models.NewRecordID(now),
		Date:    now,
		Subject: in.Subject,
		Total:   in.Total,
		Correct: in.Correct,
	}

	ts.mu.Lock()
	ts.batches = append([]models.QuestionLog{log}, ts.batches...)
	ts.store.Set(models.KeyQuestionHistory, ts.batches)
	ts.mu.Unlock()
	ts.rev.Inc()
	return log, nil
}

func (ts *TrackerService) UpdateConfig(in ConfigInput) error {
	if err := validateInput(&in); err != nil {
		return err
	}

	ts.mu.Lock()
	ts.examDate = in.ExamDate
	ts.weeklyGoalHours = in.WeeklyGoalHours
	ts.pomodoroMinutes = in.PomodoroMinutes
	ts.store.Set(models.KeyExamDate, ts.examDate)
	ts.store.Set(models.KeyWeeklyGoal, ts.weeklyGoalHours)
	ts.store.Set(models.KeyPomodoro, ts.pomodoroMinutes)
	ts.mu.Unlock()
	ts.rev.Inc()
	return nil
}

func (ts *TrackerService) AdvanceSubject() int {
	ts.mu.Lock()
	ts.subjectIndex++
	idx := ts.subjectIndex
	ts.store.Set(models.KeySubjectIndex, idx)
	ts.mu.Unlock()
	ts.rev.Inc()
	return idx
}

func (ts *TrackerService) SetStreak(count int, lastOpen time.Time) {
	ts.mu.Lock()
	ts.streak = count
	ts.lastOpen = lastOpen
	ts.store.Set(models.KeyStreak, count)
	ts.store.Set(models.KeyLastOpen, lastOpen.Format(time.RFC3339))
	ts.mu.Unlock()
	ts.rev.Inc()
}

// ResetAll clears the store and reinitializes the state bag from the
// configured defaults.
func (ts *TrackerService) ResetAll() {
	ts.mu.Lock()
	ts.store.Reset()
	ts.loadState()
	ts.mu.Unlock()
	ts.rev.Inc()
}

func (ts *TrackerService) ExamDate() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.examDate
}

func (ts *TrackerService) WeeklyGoalHours() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.weeklyGoalHours
}

func (ts *TrackerService) PomodoroMinutes() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.pomodoroMinutes
}

func (ts *TrackerService) SubjectIndex() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.subjectIndex
}

func (ts *TrackerService) StreakCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.streak
}

func (ts *TrackerService) LastOpen() time.Time {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.lastOpen
}

func (ts *TrackerService) WorkoutHistory() []models.WorkoutLog {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]models.WorkoutLog, len(ts.workouts))
	copy(out, ts.workouts)
	return out
}

func (ts *TrackerService) StudyHistory() []models.StudySession {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]models.StudySession, len(ts.sessions))
	copy(out, ts.sessions)
	return out
}

func (ts *TrackerService) QuestionHistory() []models.QuestionLog {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]models.QuestionLog, len(ts.batches))
	copy(out, ts.batches)
	return out
}

func (ts *TrackerService) Counts() (int, int, int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.workouts), len(ts.sessions), len(ts.batches)
}

// Revision identifies the current state for memoization of derived values.
func (ts *TrackerService) Revision() uint64 {
	return ts.rev.Load()
}
