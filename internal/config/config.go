package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// SignupPolicy controls how new signups are admitted and counted
type SignupPolicy struct {
	// AutoApprove creates signups as approved instead of pending
	AutoApprove bool `yaml:"autoApprove"`
	// CountAttended counts checked-in volunteers toward slot capacity in
	// addition to approved ones
	CountAttended bool `yaml:"countAttended"`
}

// RecurrenceTemplate is a named recurrence rule for authoring multi-day
// schedules: the rule's occurrence dates each get one slot with the given
// time range and capacity
type RecurrenceTemplate struct {
	Name       string `yaml:"name" validate:"required"`
	RRule      string `yaml:"rrule" validate:"required"`
	StartTime  string `yaml:"startTime" validate:"required"`
	EndTime    string `yaml:"endTime" validate:"required"`
	Volunteers int    `yaml:"volunteers" validate:"required,min=1"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL         string               `yaml:"databaseURL" validate:"required"`
	Signup              SignupPolicy         `yaml:"signup"`
	RecurrenceTemplates []RecurrenceTemplate `yaml:"recurrenceTemplates,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from lets_assist_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, tmpl := range cfg.RecurrenceTemplates {
		if _, err := rrule.StrToRRule(tmpl.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurrenceTemplates[%d] (%s): %w", i, tmpl.Name, err)
		}
	}

	return nil
}

// findConfigFile searches for lets_assist_config.yaml in the current
// directory and the home directory
func findConfigFile() (string, error) {
	configFileName := "lets_assist_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
