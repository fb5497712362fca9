package controllers

import (
	"tatico/internal/models"
	"tatico/internal/schedule"
	"tatico/internal/services"
	"tatico/internal/structures"
	"tatico/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	controller *TrackerController
	service    services.TrackerServiceInterface
	verses     *testutil.MockVerseProvider
	cache      *testutil.MockCache
	metrics    *testutil.MockMetrics
}

// 2026-03-09 is a Monday.
var testNow = time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := &structures.Config{
		Tracker: structures.TrackerConfig{
			ExamDate:        "2026-06-15",
			WeeklyGoalHours: 15,
			PomodoroMinutes: 50,
		},
	}
	svc := services.NewTrackerService(conf, testutil.NewMockStore())
	verses := &testutil.MockVerseProvider{
		Verse: models.DailyVerse{Text: "Tudo posso", Reference: "Filipenses 4:13"},
	}
	cache := testutil.NewMockCache()
	metrics := testutil.NewMockMetrics()
	tc := NewTrackerController(&testutil.MockLogger{}, svc, verses, cache, metrics)
	tc.now = func() time.Time { return testNow }
	return &fixture{controller: tc, service: svc, verses: verses, cache: cache, metrics: metrics}
}

func TestDashboard_AssemblesView(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.LogStudySession(services.StudySessionInput{
		Subject:         "Português",
		DurationMinutes: 90,
	})
	require.NoError(t, err)

	view := f.controller.Dashboard()

	assert.Equal(t, "Filipenses 4:13", view.Verse.Reference)
	assert.Equal(t, "Treino A (Tração)", view.WorkoutTitle)
	assert.Equal(t, models.WorkoutStrength, view.WorkoutType)
	assert.Equal(t, "Português", view.CurrentSubject)
	assert.Equal(t, 98, view.DaysUntilExam)
	assert.Equal(t, 900, view.WeeklyProgress.GoalMinutes)
}

func TestDashboard_SecondCallServedFromCache(t *testing.T) {
	f := newFixture(t)

	first := f.controller.Dashboard()
	second := f.controller.Dashboard()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.verses.Calls)
}

func TestDashboard_MutationInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	f.controller.Dashboard()

	_, err := f.controller.SaveQuestionBatch("Literatura", 10, 7)
	require.NoError(t, err)
	f.controller.Dashboard()

	assert.Equal(t, 2, f.verses.Calls)
}

func TestDashboard_DayChangeInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	f.controller.Dashboard()

	f.controller.now = func() time.Time { return testNow.AddDate(0, 0, 1) }
	view := f.controller.Dashboard()

	assert.Equal(t, 2, f.verses.Calls)
	// Tuesday template.
	assert.Equal(t, "Cardio HIIT", view.WorkoutTitle)
}

func TestStats_Shape(t *testing.T) {
	f := newFixture(t)
	_, err := f.controller.SaveQuestionBatch("Literatura", 10, 8)
	require.NoError(t, err)

	view := f.controller.Stats()

	assert.Len(t, view.Heatmap, 112)
	require.Len(t, view.Subjects, 6)
	for _, s := range view.Subjects {
		if s.Subject == "Literatura" {
			assert.Equal(t, 80, s.AccuracyPercent)
			return
		}
	}
	t.Fatal("subject missing from rollup")
}

func TestTodaysWorkout_MatchesSchedule(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, schedule.ForWeekday(time.Monday), f.controller.TodaysWorkout())
}

func TestSaveWorkout_DefaultsFromTemplate(t *testing.T) {
	f := newFixture(t)

	log, err := f.controller.SaveWorkout(services.WorkoutInput{
		Exercises: []models.Exercise{{Name: "Barra Fixa (Pronada)", Sets: "4", Reps: "Falha"}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.WorkoutStrength, log.Type)
	assert.Equal(t, "Treino A (Tração)", log.Notes)
}

func TestSaveWorkout_RejectCountsMetric(t *testing.T) {
	f := newFixture(t)

	_, err := f.controller.SaveWorkout(services.WorkoutInput{
		Exercises: []models.Exercise{{Name: ""}},
	})

	assert.Error(t, err)
	assert.Equal(t, 1, f.metrics.Rejects["workout"])
}

func TestSaveQuestionBatch_RejectCountsMetric(t *testing.T) {
	f := newFixture(t)

	_, err := f.controller.SaveQuestionBatch("Literatura", 10, 12)

	assert.Error(t, err)
	assert.Equal(t, 1, f.metrics.Rejects["questions"])
	_, _, batches := f.service.Counts()
	assert.Zero(t, batches)
}

func TestUpdateConfig_Flow(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.controller.UpdateConfig("2026-09-01", 20, 25))
	assert.Equal(t, "2026-09-01", f.service.ExamDate())

	assert.Error(t, f.controller.UpdateConfig("later", 20, 25))
	assert.Equal(t, 1, f.metrics.Rejects["config"])
}

func TestAccuracyPreview_Passthrough(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 70, f.controller.AccuracyPreview(7, 10))
	assert.Equal(t, 0, f.controller.AccuracyPreview(7, 0))
}

func TestResetAll_WipesState(t *testing.T) {
	f := newFixture(t)
	_, err := f.controller.SaveQuestionBatch("Literatura", 10, 7)
	require.NoError(t, err)

	f.controller.ResetAll()

	_, _, batches := f.service.Counts()
	assert.Zero(t, batches)
	assert.Equal(t, 0, f.service.StreakCount())
}
