package config

import (
	"fmt"
	"sort"
	"strconv"
)

// EnvPrefix prefixes every recognised environment variable.
const EnvPrefix = "COLLABBOARD_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envSetter func(c *Config, value string) error

// envMapping maps environment variables to the setting they override.
func envMapping() map[string]envSetter {
	return map[string]envSetter{
		EnvPrefix + "HISTORY_LIMIT": func(c *Config, v string) error {
			return setInt(&c.History.Limit, v)
		},
		EnvPrefix + "SNAP_TO_GRID": func(c *Config, v string) error {
			return setBool(&c.Canvas.SnapToGrid, v)
		},
		EnvPrefix + "WIDE_VIEWPORT_WIDTH": func(c *Config, v string) error {
			return setFloat(&c.Canvas.WideViewportWidth, v)
		},
		EnvPrefix + "STORAGE_BACKEND": func(c *Config, v string) error {
			c.Storage.Backend = v
			return nil
		},
		EnvPrefix + "STORAGE_PATH": func(c *Config, v string) error {
			c.Storage.Path = v
			return nil
		},
		EnvPrefix + "STORAGE_KEY": func(c *Config, v string) error {
			c.Storage.Key = v
			return nil
		},
		EnvPrefix + "REDIS_URL": func(c *Config, v string) error {
			c.Storage.RedisURL = v
			return nil
		},
		EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
			c.Logging.Level = v
			return nil
		},
		EnvPrefix + "LOG_FORMAT": func(c *Config, v string) error {
			c.Logging.Format = v
			return nil
		},
		EnvPrefix + "LOG_FILE": func(c *Config, v string) error {
			c.Logging.File = v
			return nil
		},
	}
}

// EnvVars returns the recognised environment variable names, sorted.
func EnvVars() []string {
	m := envMapping()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overrides settings from the environment. Empty values are treated
// as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	m := envMapping()
	for _, name := range EnvVars() {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := m[name](c, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
	}
	*dst = b
	return nil
}
