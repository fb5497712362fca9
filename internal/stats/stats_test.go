package stats

import (
	"tatico/internal/models"
	"tatico/internal/schedule"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(date time.Time, subject string, minutes int) models.StudySession {
	return models.StudySession{
		ID:              models.NewRecordID(date),
		Date:            date,
		Subject:         subject,
		DurationMinutes: minutes,
	}
}

func TestProgress_TrailingWeekOnly(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	sessions := []models.StudySession{
		session(now.Add(-2*time.Hour), "Português", 60),
		session(now.AddDate(0, 0, -3), "Literatura", 30),
		// Outside the trailing window.
		session(now.AddDate(0, 0, -8), "Português", 500),
	}

	p := Progress(sessions, 15, now)

	assert.Equal(t, 90, p.Minutes)
	assert.Equal(t, 900, p.GoalMinutes)
	assert.InDelta(t, 0.1, p.Ratio, 1e-9)
}

func TestProgress_RatioClampedAtOne(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	sessions := []models.StudySession{
		session(now.Add(-time.Hour), "Português", 2000),
	}

	p := Progress(sessions, 15, now)

	assert.Equal(t, 2000, p.Minutes)
	assert.Equal(t, 1.0, p.Ratio)
}

func TestProgress_ZeroGoal(t *testing.T) {
	now := time.Now()
	p := Progress(nil, 0, now)
	assert.Zero(t, p.Ratio)
	assert.Zero(t, p.GoalMinutes)
}

func TestSubjectRollup_AggregatesAndSorts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	sessions := []models.StudySession{
		session(now, "Português", 30),
		session(now, "Literatura", 120),
		session(now, "Português", 20),
	}
	batches := []models.QuestionLog{
		{Date: now, Subject: "Literatura", Total: 10, Correct: 7},
		{Date: now, Subject: "Literatura", Total: 10, Correct: 8},
	}

	out := SubjectRollup(schedule.Subjects(), sessions, batches)

	require.Len(t, out, 6)
	assert.Equal(t, "Literatura", out[0].Subject)
	assert.Equal(t, 120, out[0].StudyMinutes)
	assert.Equal(t, 20, out[0].QuestionsTotal)
	assert.Equal(t, 15, out[0].QuestionsRight)
	assert.Equal(t, 75, out[0].AccuracyPercent)
	assert.Equal(t, "Português", out[1].Subject)
	assert.Equal(t, 50, out[1].StudyMinutes)
}

func TestSubjectRollup_IgnoresUnknownSubjects(t *testing.T) {
	now := time.Now()
	sessions := []models.StudySession{session(now, "Astronomia", 60)}

	out := SubjectRollup(schedule.Subjects(), sessions, nil)

	for _, stat := range out {
		assert.Zero(t, stat.StudyMinutes)
	}
}

func TestSubjectRollup_AccuracyRounds(t *testing.T) {
	now := time.Now()
	batches := []models.QuestionLog{
		{Date: now, Subject: "Português", Total: 3, Correct: 2},
	}

	out := SubjectRollup(schedule.Subjects(), nil, batches)

	for _, stat := range out {
		if stat.Subject == "Português" {
			assert.Equal(t, 67, stat.AccuracyPercent)
			return
		}
	}
	t.Fatal("subject missing from rollup")
}

func TestHeatmap_ShapeAndAlignment(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	grid := Heatmap(nil, nil, nil, now)

	require.Len(t, grid, 112)
	first, err := time.ParseInLocation("2006-01-02", grid[0].Date, time.Local)
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, first.Weekday())
	for _, cell := range grid {
		assert.Zero(t, cell.Intensity)
	}
}

func TestHeatmap_IntensityLevels(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	d1 := now.AddDate(0, 0, -1) // 200 study minutes, level 4
	d2 := now.AddDate(0, 0, -2) // workout plus 35 minutes, level 2
	d3 := now.AddDate(0, 0, -3) // questions only, level 1
	sessions := []models.StudySession{
		session(d1, "Português", 200),
		session(d2, "Português", 35),
	}
	workouts := []models.WorkoutLog{
		{Date: d2, Type: models.WorkoutStrength},
	}
	batches := []models.QuestionLog{
		{Date: d3, Subject: "Literatura", Total: 10, Correct: 5},
	}

	grid := Heatmap(sessions, workouts, batches, now)

	byDate := make(map[string]int, len(grid))
	for _, cell := range grid {
		byDate[cell.Date] = cell.Intensity
	}
	assert.Equal(t, 4, byDate[models.DayKey(d1)])
	assert.Equal(t, 2, byDate[models.DayKey(d2)])
	assert.Equal(t, 1, byDate[models.DayKey(d3)])
}

func TestHeatmap_FutureCellsAreZero(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	tomorrow := now.AddDate(0, 0, 1)
	sessions := []models.StudySession{session(tomorrow, "Português", 300)}

	grid := Heatmap(sessions, nil, nil, now)

	for _, cell := range grid {
		if cell.Date == models.DayKey(tomorrow) {
			assert.Zero(t, cell.Intensity)
			return
		}
	}
	// Tomorrow may fall outside the window depending on alignment; that is
	// also a pass since nothing future was rendered.
}

func TestDayIntensity_Thresholds(t *testing.T) {
	assert.Equal(t, 0, dayIntensity(0, false, false))
	assert.Equal(t, 1, dayIntensity(10, false, false))
	assert.Equal(t, 1, dayIntensity(0, true, false))
	assert.Equal(t, 1, dayIntensity(0, false, true))
	assert.Equal(t, 2, dayIntensity(61, false, false))
	assert.Equal(t, 2, dayIntensity(31, true, false))
	assert.Equal(t, 3, dayIntensity(121, false, false))
	assert.Equal(t, 3, dayIntensity(61, true, false))
	assert.Equal(t, 4, dayIntensity(181, false, false))
	assert.Equal(t, 4, dayIntensity(91, true, false))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	// Partial days round up.
	assert.Equal(t, 1, DaysUntil("2026-03-11", now))
	assert.Equal(t, 97, DaysUntil("2026-06-15", now))
	assert.Equal(t, 0, DaysUntil("2026-03-01", now))
	assert.Equal(t, 0, DaysUntil("junho", now))
}

func TestAccuracyPreview(t *testing.T) {
	assert.Equal(t, 0, AccuracyPreview(5, 0))
	assert.Equal(t, 0, AccuracyPreview(3, -1))
	assert.Equal(t, 50, AccuracyPreview(5, 10))
	assert.Equal(t, 67, AccuracyPreview(2, 3))
	assert.Equal(t, 100, AccuracyPreview(10, 10))
}
