// Package config resolves tunables for the pipeline: Phase 2's slot-penalty
// weights, Phase 4's solver budget, and the default time grid. It layers
// sources the usual way: a local .env file (via joho/godotenv) feeds
// process environment variables, and spf13/viper then binds env vars, a
// config file, and defaults into one typed struct.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SlotWeights are the Phase 2 penalty weights. Their relative magnitudes are
// a hard contract (grade separation dominates spread, which dominates
// time-of-day preference); the absolute values are tunable.
type SlotWeights struct {
	Grade     int
	Spread    int
	SpreadTime int
}

// DefaultSlotWeights matches the recommended default slot-scoring weights.
func DefaultSlotWeights() SlotWeights {
	return SlotWeights{Grade: 100, Spread: 10, SpreadTime: 1}
}

// SolverOptions configures the external MIP solver invocation.
type SolverOptions struct {
	TimeLimit time.Duration
	MIPGap    float64
	Threads   int
}

// TimeLimitFor scales the default time budget with the student count, per
// the schedule.
func TimeLimitFor(studentCount int) time.Duration {
	switch {
	case studentCount < 500:
		return 5 * time.Second
	case studentCount < 2000:
		return 30 * time.Second
	default:
		return 120 * time.Second
	}
}

// Config is the fully resolved set of pipeline tunables.
type Config struct {
	Weights       SlotWeights
	Solver        SolverOptions
	DefaultDays   int
	DefaultPeriods int
}

// Load reads .env (if present), then environment variables prefixed
// SCHEDGEN_, then an optional config file at path, falling back to
// defaults for anything unset. path may be empty to skip the file source.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // absence of .env is not an error

	v := viper.New()
	v.SetEnvPrefix("SCHEDGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("weights.grade", 100)
	v.SetDefault("weights.spread", 10)
	v.SetDefault("weights.spreadtime", 1)
	v.SetDefault("solver.mipgap", 0.0)
	v.SetDefault("solver.threads", 0) // 0 means "hardware concurrency"
	v.SetDefault("timegrid.days", 5)
	v.SetDefault("timegrid.periods", 7)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, err
			}
		}
	}

	return Config{
		Weights: SlotWeights{
			Grade:      v.GetInt("weights.grade"),
			Spread:     v.GetInt("weights.spread"),
			SpreadTime: v.GetInt("weights.spreadtime"),
		},
		Solver: SolverOptions{
			MIPGap:  v.GetFloat64("solver.mipgap"),
			Threads: v.GetInt("solver.threads"),
		},
		DefaultDays:    v.GetInt("timegrid.days"),
		DefaultPeriods: v.GetInt("timegrid.periods"),
	}, nil
}
