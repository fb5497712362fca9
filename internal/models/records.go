package models

import (
	"strconv"
	"time"
)

// Workout type tags used by the schedule table and the workout log.
const (
	WorkoutRest     = "REST"
	WorkoutStrength = "STRENGTH"
	WorkoutCardio   = "CARDIO"
	WorkoutRun      = "RUN"
)

// Exercise is a single row of a workout log. All fields are free-form
// display strings; Weight may be empty, descriptive, or "Corpo" for
// bodyweight work.
type Exercise struct {
	Name   string `json:"name"`
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
	Sets   string `json:"sets"`
}

type WorkoutLog struct {
	ID        string     `json:"id"`
	Date      time.Time  `json:"date"`
	Type      string     `json:"type"`
	Notes     string     `json:"notes"`
	Exercises []Exercise `json:"exercises"`
}

type StudySession struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Subject         string    `json:"subject"`
	DurationMinutes int       `json:"durationMinutes"`
}

type QuestionLog struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Subject string    `json:"subject"`
	Total   int       `json:"total"`
	Correct int       `json:"correct"`
}

type DailyVerse struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// NewRecordID derives a log id from the creation instant. Collisions are
// only possible at sub-millisecond granularity, which is accepted for a
// single-writer tracker.
func NewRecordID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// DayKey is the calendar-day bucket used by the heatmap and the verse cache.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
