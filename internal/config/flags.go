package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWorkers = flag.Int("workers", 0, "Concurrent mesh workers")
	flagArity   = flag.Int("arity", 0, "Indices per primitive")
	flagLogFile = flag.String("log", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWorkers > 0 {
		cfg.Mesh.Workers = *flagWorkers
	}
	if *flagArity > 0 {
		cfg.Mesh.PrimitiveArity = *flagArity
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
