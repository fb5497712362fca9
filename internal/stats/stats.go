// Package stats derives display values from the raw activity logs. All
// functions are pure over immutable snapshots; derived values are never
// cached inside the entity model.
package stats

import (
	"math"
	"sort"
	"tatico/internal/models"
	"time"
)

const (
	heatmapWeeks = 16
	heatmapDays  = heatmapWeeks * 7
)

// WeeklyProgress is the trailing-week study volume measured against the
// weekly goal. Ratio is clamped to [0,1] for display.
type WeeklyProgress struct {
	Minutes     int     `json:"minutes"`
	GoalMinutes int     `json:"goalMinutes"`
	Ratio       float64 `json:"ratio"`
}

// SubjectStat is the all-history rollup for one subject.
type SubjectStat struct {
	Subject         string `json:"subject"`
	StudyMinutes    int    `json:"studyMinutes"`
	QuestionsTotal  int    `json:"questionsTotal"`
	QuestionsRight  int    `json:"questionsRight"`
	AccuracyPercent int    `json:"accuracyPercent"`
}

// HeatmapDay is one cell of the 16-week consistency heatmap.
type HeatmapDay struct {
	Date      string `json:"date"`
	Intensity int    `json:"intensity"`
}

// Progress sums study minutes logged within the trailing 7×24h window
// ending now and relates them to the weekly goal.
func Progress(sessions []models.StudySession, goalHours int, now time.Time) WeeklyProgress {
	cutoff := now.Add(-7 * 24 * time.Hour)
	minutes := 0
	for _, s := range sessions {
		if s.Date.After(cutoff) && !s.Date.After(now) {
			minutes += s.DurationMinutes
		}
	}

	goalMinutes := goalHours * 60
	ratio := 0.0
	if goalMinutes > 0 {
		ratio = math.Min(float64(minutes)/float64(goalMinutes), 1)
	}

	return WeeklyProgress{
		Minutes:     minutes,
		GoalMinutes: goalMinutes,
		Ratio:       ratio,
	}
}

// SubjectRollup aggregates study minutes and question accuracy per subject
// across all history, sorted by study minutes descending. Subjects outside
// the fixed list are ignored, matching the append-only logs' provenance.
func SubjectRollup(subjects []string, sessions []models.StudySession, batches []models.QuestionLog) []SubjectStat {
	index := make(map[string]int, len(subjects))
	out := make([]SubjectStat, len(subjects))
	for i, subj := range subjects {
		index[subj] = i
		out[i] = SubjectStat{Subject: subj}
	}

	for _, s := range sessions {
		if i, ok := index[s.Subject]; ok {
			out[i].StudyMinutes += s.DurationMinutes
		}
	}
	for _, q := range batches {
		if i, ok := index[q.Subject]; ok {
			out[i].QuestionsTotal += q.Total
			out[i].QuestionsRight += q.Correct
		}
	}

	for i := range out {
		if out[i].QuestionsTotal > 0 {
			out[i].AccuracyPercent = int(math.Round(
				float64(out[i].QuestionsRight) / float64(out[i].QuestionsTotal) * 100))
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].StudyMinutes > out[b].StudyMinutes
	})
	return out
}

// Heatmap builds the 16-week activity grid. The window starts 112 days
// before today backed up to the preceding Sunday, so columns align on
// whole weeks. Cells after today are forced to intensity 0.
func Heatmap(sessions []models.StudySession, workouts []models.WorkoutLog, batches []models.QuestionLog, now time.Time) []HeatmapDay {
	studyByDay := make(map[string]int)
	for _, s := range sessions {
		studyByDay[models.DayKey(s.Date)] += s.DurationMinutes
	}
	workoutDays := make(map[string]bool)
	for _, w := range workouts {
		workoutDays[models.DayKey(w.Date)] = true
	}
	questionDays := make(map[string]bool)
	for _, q := range batches {
		questionDays[models.DayKey(q.Date)] = true
	}

	start := now.AddDate(0, 0, -heatmapDays)
	start = start.AddDate(0, 0, -int(start.Weekday()))
	todayKey := models.DayKey(now)

	out := make([]HeatmapDay, 0, heatmapDays)
	for i := 0; i < heatmapDays; i++ {
		d := start.AddDate(0, 0, i)
		key := models.DayKey(d)

		intensity := 0
		if key <= todayKey {
			intensity = dayIntensity(studyByDay[key], workoutDays[key], questionDays[key])
		}
		out = append(out, HeatmapDay{Date: key, Intensity: intensity})
	}
	return out
}

// dayIntensity maps a day's activity onto the 0–4 ordinal scale. Later
// thresholds override earlier ones.
func dayIntensity(studyMins int, workoutDone, questionsDone bool) int {
	intensity := 0
	if workoutDone || questionsDone || studyMins > 0 {
		intensity = 1
	}
	if (workoutDone && studyMins > 30) || studyMins > 60 {
		intensity = 2
	}
	if (workoutDone && studyMins > 60) || studyMins > 120 {
		intensity = 3
	}
	if (workoutDone && studyMins > 90) || studyMins > 180 {
		intensity = 4
	}
	return intensity
}

// DaysUntil returns whole days from now until the exam date (ISO form),
// rounded up and floored at zero. Unparseable dates count as zero.
func DaysUntil(examDate string, now time.Time) int {
	exam, err := time.ParseInLocation("2006-01-02", examDate, now.Location())
	if err != nil {
		return 0
	}
	days := int(math.Ceil(exam.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// AccuracyPreview is the live percentage shown while entering a question
// batch. Zero when the total is not positive.
func AccuracyPreview(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
