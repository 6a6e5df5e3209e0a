// Package config handles objtool configuration loading and management.
package config

// Config holds all objtool settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds file output settings.
type OutputConfig struct {
	Directory   string `yaml:"directory"`    // Directory for rewritten files
	MaterialLib bool   `yaml:"material_lib"` // Write an MTL library alongside the OBJ
	Overwrite   bool   `yaml:"overwrite"`    // Allow overwriting existing outputs
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory:   ".",
			MaterialLib: true,
			Overwrite:   false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
