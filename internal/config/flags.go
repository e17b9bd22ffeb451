package config

import (
	"time"

	"github.com/spf13/pflag"
)

// ListFlags registers the list command flags. Resolve layers defaults,
// environment, positional arguments and explicitly set flags, in that order.
type ListFlags struct {
	fs         *pflag.FlagSet
	output     string
	extensions []string
	verbose    bool
}

func NewListFlags(fs *pflag.FlagSet) *ListFlags {
	f := &ListFlags{fs: fs}
	fs.StringVarP(&f.output, "output", "o", DefaultOutput, "JSON file to write")
	fs.StringSliceVarP(&f.extensions, "ext", "e", nil, "Image extensions to match (repeatable or comma separated)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	return f
}

func (f *ListFlags) Resolve(args, environ []string) (ListConfig, error) {
	cfg := DefaultList()
	if err := ApplyEnv(environ, ListEnvPrefix, &cfg); err != nil {
		return ListConfig{}, err
	}
	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	if f.fs.Changed("output") {
		cfg.Output = f.output
	}
	if f.fs.Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if f.fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if err := cfg.Validate(); err != nil {
		return ListConfig{}, err
	}
	return cfg, nil
}

type CollectFlags struct {
	fs          *pflag.FlagSet
	extensions  []string
	ignore      []string
	dryRun      bool
	verbose     bool
	interactive bool
	lockTimeout time.Duration
}

func NewCollectFlags(fs *pflag.FlagSet) *CollectFlags {
	f := &CollectFlags{fs: fs}
	fs.StringSliceVarP(&f.extensions, "ext", "e", nil, "Photo extensions to match (repeatable or comma separated)")
	fs.StringArrayVar(&f.ignore, "ignore", nil, "Gitignore-style pattern of source paths to skip (repeatable)")
	fs.BoolVarP(&f.dryRun, "dry-run", "d", false, "Show what would be copied without copying")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "Show an interactive progress view")
	fs.DurationVar(&f.lockTimeout, "lock-timeout", 0, "Lock <target>.lock and wait this long for it (0 disables locking)")
	return f
}

func (f *CollectFlags) Resolve(args, environ []string) (CollectConfig, error) {
	cfg := DefaultCollect()
	if err := ApplyEnv(environ, CollectEnvPrefix, &cfg); err != nil {
		return CollectConfig{}, err
	}
	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	if len(args) > 1 {
		cfg.TargetDir = args[1]
	}
	if f.fs.Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if f.fs.Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if f.fs.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if f.fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if f.fs.Changed("interactive") {
		cfg.Interactive = f.interactive
	}
	if f.fs.Changed("lock-timeout") {
		cfg.LockTimeout = f.lockTimeout
	}
	if err := cfg.Validate(); err != nil {
		return CollectConfig{}, err
	}
	return cfg, nil
}
