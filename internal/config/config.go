package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTolerance = 1e-12
	DefaultParseMode = "strict"
	DefaultDataDir   = ".linsolve"
)

type Config struct {
	Tolerance       float64      `yaml:"tolerance"`
	ParseMode       string       `yaml:"parse_mode"`
	ShowInverse     bool         `yaml:"show_inverse"`
	ShowDeterminant bool         `yaml:"show_determinant"`
	SaveRuns        bool         `yaml:"save_runs"`
	DataDir         string       `yaml:"data_dir"`
	Editor          EditorConfig `yaml:"editor"`
}

type EditorConfig struct {
	ShowHelp bool `yaml:"show_help"`
	Width    int  `yaml:"width"`
}

func DefaultConfig() *Config {
	return &Config{
		Tolerance: DefaultTolerance,
		ParseMode: DefaultParseMode,
		DataDir:   DefaultDataDir,
		Editor: EditorConfig{
			ShowHelp: true,
			Width:    80,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
