package config

import (
	"errors"
	"slices"
	"time"

	"imgkit/internal/domain"
)

const (
	ListEnvPrefix    = "IMGKIT_LIST"
	CollectEnvPrefix = "IMGKIT_COLLECT"

	DefaultOutput = "images.json"
)

type ListConfig struct {
	SourceDir  string   `mapstructure:"source_dir"`
	Output     string   `mapstructure:"output"`
	Extensions []string `mapstructure:"extensions"`
	Verbose    bool     `mapstructure:"verbose"`
}

type CollectConfig struct {
	SourceDir   string        `mapstructure:"source_dir"`
	TargetDir   string        `mapstructure:"target_dir"`
	Extensions  []string      `mapstructure:"extensions"`
	Ignore      []string      `mapstructure:"ignore"`
	DryRun      bool          `mapstructure:"dry_run"`
	Verbose     bool          `mapstructure:"verbose"`
	Interactive bool          `mapstructure:"interactive"`
	// LockTimeout of zero, the default, disables the destination lock.
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

func DefaultList() ListConfig {
	return ListConfig{
		Output:     DefaultOutput,
		Extensions: slices.Clone(domain.DefaultImageExtensions),
	}
}

func DefaultCollect() CollectConfig {
	return CollectConfig{
		Extensions: slices.Clone(domain.DefaultImageExtensions),
	}
}

func (c ListConfig) Validate() error {
	if c.SourceDir == "" {
		return errors.New("source directory is required")
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if domain.NewExtensionSet(c.Extensions...).Len() == 0 {
		return errors.New("at least one extension is required")
	}
	return nil
}

func (c CollectConfig) Validate() error {
	if c.SourceDir == "" || c.TargetDir == "" {
		return errors.New("source and target are required")
	}
	if domain.NewExtensionSet(c.Extensions...).Len() == 0 {
		return errors.New("at least one extension is required")
	}
	if c.LockTimeout < 0 {
		return errors.New("lock timeout must not be negative")
	}
	return nil
}
