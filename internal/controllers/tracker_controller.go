package controllers

import (
	"fmt"
	"tatico/internal/models"
	"tatico/internal/providers"
	"tatico/internal/schedule"
	"tatico/internal/services"
	"tatico/internal/stats"
	"time"

	json "github.com/goccy/go-json"
)

// DashboardView is everything the dashboard screen renders.
type DashboardView struct {
	Verse          models.DailyVerse    `json:"verse"`
	StreakDays     int                  `json:"streakDays"`
	DaysUntilExam  int                  `json:"daysUntilExam"`
	WorkoutTitle   string               `json:"workoutTitle"`
	WorkoutFocus   string               `json:"workoutFocus"`
	WorkoutType    string               `json:"workoutType"`
	CurrentSubject string               `json:"currentSubject"`
	WeeklyProgress stats.WeeklyProgress `json:"weeklyProgress"`
}

// StatsView is the report screen: consistency heatmap plus the per-subject
// performance rollup.
type StatsView struct {
	Heatmap  []stats.HeatmapDay  `json:"heatmap"`
	Subjects []stats.SubjectStat `json:"subjects"`
}

// TrackerController is the mutation and derivation surface the view layer
// drives. Derived view models are memoized by state revision and calendar
// day, so repeated renders of an unchanged day never recompute.
type TrackerController struct {
	logger  providers.Logger
	service services.TrackerServiceInterface
	verses  providers.VerseProviderInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewTrackerController(
	logger providers.Logger,
	service services.TrackerServiceInterface,
	verses providers.VerseProviderInterface,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
) *TrackerController {
	return &TrackerController{
		logger:  logger,
		service: service,
		verses:  verses,
		cache:   cache,
		metrics: metrics,
		now:     time.Now,
	}
}

func (tc *TrackerController) cacheKey(name string) string {
	return fmt.Sprintf("%s:%d:%s", name, tc.service.Revision(), models.DayKey(tc.now()))
}

func serveFromCacheOrCompute[T any](tc *TrackerController, name string, compute func() T) T {
	key := tc.cacheKey(name)
	if data, ok := tc.cache.Get(key); ok {
		var view T
		if err := json.Unmarshal(data, &view); err == nil {
			return view
		}
	}

	view := compute()
	if data, err := json.Marshal(view); err == nil {
		tc.cache.Set(key, data)
	}
	return view
}

// Dashboard assembles the home screen. The first call of a day triggers
// the verse fetch; afterwards the cached view is served until the next
// mutation or day change.
func (tc *TrackerController) Dashboard() DashboardView {
	return serveFromCacheOrCompute(tc, "dashboard", func() DashboardView {
		now := tc.now()
		workout := schedule.ForDate(now)
		return DashboardView{
			Verse:          tc.verses.Today(),
			StreakDays:     tc.service.StreakCount(),
			DaysUntilExam:  stats.DaysUntil(tc.service.ExamDate(), now),
			WorkoutTitle:   workout.Title,
			WorkoutFocus:   workout.Focus,
			WorkoutType:    workout.Type,
			CurrentSubject: schedule.Subject(tc.service.SubjectIndex()),
			WeeklyProgress: stats.Progress(tc.service.StudyHistory(), tc.service.WeeklyGoalHours(), now),
		}
	})
}

// Stats assembles the report screen.
func (tc *TrackerController) Stats() StatsView {
	return serveFromCacheOrCompute(tc, "stats", func() StatsView {
		now := tc.now()
		return StatsView{
			Heatmap: stats.Heatmap(
				tc.service.StudyHistory(),
				tc.service.WorkoutHistory(),
				tc.service.QuestionHistory(),
				now,
			),
			Subjects: stats.SubjectRollup(
				schedule.Subjects(),
				tc.service.StudyHistory(),
				tc.service.QuestionHistory(),
			),
		}
	})
}

// TodaysWorkout returns the template prefilled into the workout logger.
func (tc *TrackerController) TodaysWorkout() schedule.Template {
	return schedule.ForDate(tc.now())
}

// SaveWorkout logs a workout. Type and notes default from today's template
// when the caller leaves them empty.
func (tc *TrackerController) SaveWorkout(in services.WorkoutInput) (models.WorkoutLog, error) {
	workout := schedule.ForDate(tc.now())
	if in.Type == "" {
		in.Type = workout.Type
	}
	if in.Notes == "" {
		in.Notes = workout.Title
	}

	log, err := tc.service.LogWorkout(in)
	if err != nil {
		tc.metrics.IncValidationRejects("workout")
		return models.WorkoutLog{}, err
	}
	tc.logger.Infof(providers.TypeApp, "Workout logged: %s (%d exercises)", log.Notes, len(log.Exercises))
	return log, nil
}

// SaveQuestionBatch logs a practice batch. Submissions where correct
// exceeds total, or total is not positive, are rejected with no mutation.
func (tc *TrackerController) SaveQuestionBatch(subject string, total, correct int) (models.QuestionLog, error) {
	log, err := tc.service.LogQuestionBatch(services.QuestionBatchInput{
		Subject: subject,
		Total:   total,
		Correct: correct,
	})
	if err != nil {
		tc.metrics.IncValidationRejects("questions")
		return models.QuestionLog{}, err
	}
	tc.logger.Infof(providers.TypeApp, "Question batch logged: %d/%d on %s", log.Correct, log.Total, log.Subject)
	return log, nil
}

// UpdateConfig stores the goal, timer and exam-date settings.
func (tc *TrackerController) UpdateConfig(examDate string, weeklyGoalHours, pomodoroMinutes int) error {
	err := tc.service.UpdateConfig(services.ConfigInput{
		ExamDate:        examDate,
		WeeklyGoalHours: weeklyGoalHours,
		PomodoroMinutes: pomodoroMinutes,
	})
	if err != nil {
		tc.metrics.IncValidationRejects("config")
	}
	return err
}

// AccuracyPreview mirrors the live percentage shown while typing a batch.
func (tc *TrackerController) AccuracyPreview(correct, total int) int {
	return stats.AccuracyPreview(correct, total)
}

// ResetAll wipes every persisted key and reseeds defaults. The view layer
// must confirm with the user before calling this.
func (tc *TrackerController) ResetAll() {
	tc.service.ResetAll()
	tc.logger.Warnf(providers.TypeApp, "Full data reset performed")
}
