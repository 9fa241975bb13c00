package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override a run file.
const (
	EnvOutput      = "CHEMEVO_OUTPUT"
	EnvMonitorPort = "CHEMEVO_MONITOR_PORT"
	EnvSeed        = "CHEMEVO_SEED"
)

// Environment reads the overrides from the dotenv files that exist, then
// from the process environment, which wins.
func Environment(files ...string) (map[string]string, error) {
	env := make(map[string]string)

	for _, file := range files {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", file, err)
		}

		for k, v := range values {
			env[k] = v
		}
	}

	for _, k := range []string{EnvOutput, EnvMonitorPort, EnvSeed} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}

	return env, nil
}

// ApplyEnv overrides the output, monitor port and seed of r.
func (r *Run) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvOutput]; ok && v != "" {
		r.Output = v
	}

	if v, ok := env[EnvMonitorPort]; ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvMonitorPort, v)
		}

		r.Monitor.Enabled = true
		r.Monitor.Port = port
	}

	if v, ok := env[EnvSeed]; ok && v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSeed, v)
		}

		r.Seed = seed
	}

	return nil
}
