package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagOut    = flag.String("out", "", "Output directory for rewritten files")
	flagNoMtl  = flag.Bool("no-mtl", false, "Skip writing MTL material libraries")
	flagForce  = flag.Bool("force", false, "Overwrite existing output files")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagOut != "" {
		cfg.Output.Directory = *flagOut
	}
	if *flagNoMtl {
		cfg.Output.MaterialLib = false
	}
	if *flagForce {
		cfg.Output.Overwrite = true
	}
}
