// Package config reads polymap settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Defaults: central Brazil at continental zoom.
const (
	DefaultHomeLon  = -54.9253
	DefaultHomeLat  = -15.235
	DefaultHomeZoom = 4
)

type Config struct {
	HomeCenter orb.Point
	HomeZoom   int
	ExportDir  string
	LogFile    string
	LogLevel   int
}

// Load reads .env files that exist (earlier ones win, the process
// environment wins over all) and then the environment.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, errors.Wrapf(err, "load %s", f)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv lookups.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		HomeCenter: orb.Point{DefaultHomeLon, DefaultHomeLat},
		HomeZoom:   DefaultHomeZoom,
		ExportDir:  ".",
	}
	var err error
	if c.HomeCenter[0], err = floatVar(getenv, "POLYMAP_HOME_LON", DefaultHomeLon, -180, 180); err != nil {
		return Config{}, err
	}
	if c.HomeCenter[1], err = floatVar(getenv, "POLYMAP_HOME_LAT", DefaultHomeLat, -85, 85); err != nil {
		return Config{}, err
	}
	if c.HomeZoom, err = intVar(getenv, "POLYMAP_HOME_ZOOM", DefaultHomeZoom, 1, 19); err != nil {
		return Config{}, err
	}
	if c.LogLevel, err = intVar(getenv, "POLYMAP_LOG_LEVEL", 0, 0, 10); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(getenv("POLYMAP_EXPORT_DIR")); v != "" {
		c.ExportDir = v
	}
	c.LogFile = strings.TrimSpace(getenv("POLYMAP_LOG_FILE"))
	return c, nil
}

func floatVar(getenv func(string) string, key string, def, lo, hi float64) (float64, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	if f < lo || f > hi {
		return 0, errors.Errorf("%s: %v out of range [%v, %v]", key, f, lo, hi)
	}
	return f, nil
}

func intVar(getenv func(string) string, key string, def, lo, hi int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	if n < lo || n > hi {
		return 0, errors.Errorf("%s: %d out of range [%d, %d]", key, n, lo, hi)
	}
	return n, nil
}
