package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//Profile holds the tunables shared by the command line tools.
type Profile struct {
	Decoder   DecoderConfig   `yaml:"decoder"`
	Alignment AlignmentConfig `yaml:"alignment"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type DecoderConfig struct {
	MaxIterations int  `yaml:"max_iterations"`
	Threads       int  `yaml:"threads"` // <=0 uses all CPUs
	InPlace       bool `yaml:"in_place"`
}

//AlignmentConfig is the hardware block size matrices are padded to.
type AlignmentConfig struct {
	RowMultiple int `yaml:"row_multiple"`
	ColMultiple int `yaml:"col_multiple"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // when set decode metrics are written here
}

func Default() *Profile {
	return &Profile{
		Decoder: DecoderConfig{
			MaxIterations: 20,
			Threads:       0,
			InPlace:       true,
		},
		Alignment: AlignmentConfig{
			RowMultiple: 32,
			ColMultiple: 32,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

//Load reads the YAML file at filename over the defaults. An empty filename returns the defaults.
func Load(filename string) (*Profile, error) {
	profile := Default()
	if filename == "" {
		return profile, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %v: %w", filename, err)
	}
	return profile, nil
}

func (p *Profile) Validate() error {
	if p.Decoder.MaxIterations < 0 {
		return fmt.Errorf("decoder.max_iterations must be >=0 but found %v", p.Decoder.MaxIterations)
	}
	if p.Alignment.RowMultiple < 1 || p.Alignment.ColMultiple < 1 {
		return fmt.Errorf("alignment multiples must be >=1 but found (%v,%v)", p.Alignment.RowMultiple, p.Alignment.ColMultiple)
	}
	if _, err := logrus.ParseLevel(p.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

//LogLevel returns the parsed logging level, Validate guarantees it parses.
func (p *Profile) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(p.Logging.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

//Write stores the profile as YAML.
func (p *Profile) Write(filename string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
