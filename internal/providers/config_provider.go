package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"tatico/internal/structures"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("tracker.examDate", "2026-06-15")
	viper.SetDefault("tracker.weeklyGoalHours", 15)
	viper.SetDefault("tracker.pomodoroMinutes", 50)
	viper.SetDefault("verse.endpoint", "https://bible-api.com/?random=verse&translation=almeida")
	viper.SetDefault("verse.refreshInterval", time.Hour)
	viper.SetDefault("metrics.addr", "127.0.0.1:9190")

	viper.BindEnv("logger.level", "TATICO_LOG_LEVEL")
	viper.BindEnv("persistence.filePath", "TATICO_DATA_FILE")
	viper.BindEnv("persistence.saveInterval", "TATICO_SAVE_INTERVAL")
	viper.BindEnv("verse.endpoint", "TATICO_VERSE_ENDPOINT")
	viper.BindEnv("cache.enabled", "TATICO_CACHE_ENABLED")
	viper.BindEnv("cache.size", "TATICO_CACHE_SIZE")
	viper.BindEnv("metrics.enabled", "TATICO_METRICS_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ProtocoloTatico"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
