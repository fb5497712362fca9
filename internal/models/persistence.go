package models

import json "github.com/goccy/go-json"

// Persistent store keys. The names are kept stable because they identify
// the user's data on disk across releases.
const (
	KeyExamDate        = "tactical_exam_date"
	KeyWeeklyGoal      = "tactical_weekly_goal"
	KeyPomodoro        = "tactical_pomodoro_duration"
	KeySubjectIndex    = "tactical_subject_index"
	KeyStudyHistory    = "tactical_study_history"
	KeyQuestionHistory = "tactical_question_history"
	KeyWorkoutHistory  = "tactical_workout_history"
	KeyLastOpen        = "tactical_last_open"
	KeyStreak          = "tactical_streak"
	KeyVerseData       = "tactical_daily_verse_data"
	KeyVerseDate       = "tactical_daily_verse_date"
)

const SnapshotVersion = 2

// Snapshot is the on-disk persistence envelope. Each key is stored as raw
// JSON so that a decode failure of one value never poisons the others.
// V1 files were a bare key→value map without the envelope; the loader
// still accepts them.
type Snapshot struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		Entries: make(map[string]json.RawMessage),
	}
}
