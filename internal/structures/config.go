package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type VerseConfig struct {
	Endpoint        string        `yaml:"endpoint" validate:"required|fullUrl"`
	RefreshInterval time.Duration `yaml:"refreshInterval" validate:"required|min:1"`
}

// TrackerConfig holds the seed values used when the persistent store has no
// recorded configuration yet. The live values are owned by the store.
type TrackerConfig struct {
	ExamDate        string `yaml:"examDate" validate:"required|date"`
	WeeklyGoalHours int    `yaml:"weeklyGoalHours" validate:"required|int|min:1"`
	PomodoroMinutes int    `yaml:"pomodoroMinutes" validate:"required|int|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Tracker     TrackerConfig `yaml:"tracker"`
	Verse       VerseConfig   `yaml:"verse"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
