package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML values like "500ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Options are the tunable migration settings. Everything here has a
// working default; the YAML file only needs the values an operator wants
// to change.
type Options struct {
	// PageSize is how many records each paginated source request asks for.
	PageSize int `yaml:"page_size"`
	// RateLimitThreshold is the remaining-quota level under which the
	// source reader waits for the reported reset time.
	RateLimitThreshold int `yaml:"rate_limit_threshold"`
	// PositionStep spaces list and checklist-item positions so manual
	// reordering after the migration has room.
	PositionStep int64 `yaml:"position_step"`
	// FallbackListName is the list synthesized for boards that end up
	// with no lists.
	FallbackListName string `yaml:"fallback_list_name"`
	// MaxAttachmentBytes is the hard attachment size ceiling.
	MaxAttachmentBytes int64 `yaml:"max_attachment_bytes"`
	// UserPassword is assigned to migrated accounts; source passwords
	// cannot be read.
	UserPassword string `yaml:"user_password"`
	// RetryAttempts and RetryDelay configure the transport backoff.
	RetryAttempts int      `yaml:"retry_attempts"`
	RetryDelay    Duration `yaml:"retry_delay"`
	// ConsistencyDelay is how long to wait before retrying a dependent
	// deletion the target has not caught up with yet.
	ConsistencyDelay Duration `yaml:"consistency_delay"`
	// RequestsPerSecond paces outgoing requests client-side.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// DefaultOptions returns the options used when no YAML file is supplied.
func DefaultOptions() Options {
	return Options{
		PageSize:           50,
		RateLimitThreshold: 10,
		PositionStep:       65535,
		FallbackListName:   "Default List",
		MaxAttachmentBytes: 10 * 1024 * 1024,
		UserPassword:       "TempPassword123!",
		RetryAttempts:      4,
		RetryDelay:         Duration(500 * time.Millisecond),
		ConsistencyDelay:   Duration(time.Second),
		RequestsPerSecond:  10,
	}
}

// LoadOptions reads the YAML options file at path, applying defaults for
// anything the file omits. An empty path returns the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read options file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(bytes, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse options file '%s': %w", path, err)
	}
	return opts, nil
}
