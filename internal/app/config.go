package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/utils"
)

type Config struct {
	Port                string
	AutosaveDelay       time.Duration
	AnalysisParallelism int
}

// fileConfig is the optional CONFIG_FILE overlay; any field set there wins
// over the environment.
type fileConfig struct {
	Port                 string `yaml:"port"`
	AutosaveDelaySeconds int    `yaml:"autosave_delay_seconds"`
	AnalysisParallelism  int    `yaml:"analysis_parallelism"`
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	autosaveDelaySeconds := utils.GetEnvAsInt("AUTOSAVE_DELAY_SECONDS", 30, log)
	analysisParallelism := utils.GetEnvAsInt("ANALYSIS_PARALLELISM", 3, log)

	cfg := Config{
		Port:                port,
		AutosaveDelay:       time.Duration(autosaveDelaySeconds) * time.Second,
		AnalysisParallelism: analysisParallelism,
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Could not read config file, using environment only", "path", path, "error", err)
		return cfg
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		log.Warn("Could not parse config file, using environment only", "path", path, "error", err)
		return cfg
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.AutosaveDelaySeconds > 0 {
		cfg.AutosaveDelay = time.Duration(fc.AutosaveDelaySeconds) * time.Second
	}
	if fc.AnalysisParallelism > 0 {
		cfg.AnalysisParallelism = fc.AnalysisParallelism
	}
	return cfg
}
