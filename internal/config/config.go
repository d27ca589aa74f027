// Package config handles meshtool configuration loading and management.
package config

// Config holds all meshtool settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// MeshConfig holds settings applied when building and transforming meshes.
type MeshConfig struct {
	PrimitiveArity int `yaml:"primitive_arity" toml:"primitive_arity"` // indices per primitive
	Workers        int `yaml:"workers" toml:"workers"`                 // 0 means one per mesh
}

// OutputConfig controls how the info command reports meshes.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"` // "text" or "yaml"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			PrimitiveArity: 3,
			Workers:        4,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
