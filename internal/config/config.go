package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/maintenance-tracker/pkg/core/scheduling"
	"github.com/jakechorley/maintenance-tracker/pkg/core/specialization"
)

const configFileBase = "maintenance_config"

// StandingAssignment is recurring work (e.g. a monthly boiler check) that occupies a
// worker and unit on every date matched by its RRule
type StandingAssignment struct {
	RRule           string `yaml:"rrule" validate:"required"`
	Start           string `yaml:"start" validate:"required,datetime=2006-01-02"`
	PropertyCode    string `yaml:"propertyCode" validate:"required"`
	UnitNumber      string `yaml:"unitNumber" validate:"required"`
	WorkerEmail     string `yaml:"workerEmail" validate:"required,email"`
	WorkOrderNumber string `yaml:"workOrderNumber" validate:"required"`
	IsEmergency     bool   `yaml:"isEmergency,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL                    string               `yaml:"databaseURL" env:"MAINT_DATABASE_URL" validate:"required"`
	MaxAssignmentsPerWorkerPerUnit int                  `yaml:"maxAssignmentsPerWorkerPerUnit,omitempty" validate:"min=1"`
	UnitCapScope                   string               `yaml:"unitCapScope,omitempty" validate:"oneof=same_date any_date"`
	SpecializationAliases          map[string][]string  `yaml:"specializationAliases,omitempty" validate:"dive,keys,required,endkeys,min=1"`
	StandingAssignments            []StandingAssignment `yaml:"standingAssignments,omitempty" validate:"dive"`
	MetricsFile                    string               `yaml:"metricsFile,omitempty" env:"MAINT_METRICS_FILE"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from maintenance_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile(configFileBase + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv loads the configuration for an environment
// For example, env="test" will look for "maintenance_config.test.yaml"
func LoadWithEnv(envName string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("%s.%s.yaml", configFileBase, envName))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// MAINT_* environment variables override values from the file.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills optional fields left out of the file
func applyDefaults(cfg *Config) {
	if cfg.MaxAssignmentsPerWorkerPerUnit == 0 {
		cfg.MaxAssignmentsPerWorkerPerUnit = scheduling.DefaultMaxAssignmentsPerWorkerPerUnit
	}
	if cfg.UnitCapScope == "" {
		cfg.UnitCapScope = string(scheduling.UnitCapSameDate)
	}
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each standing assignment
	for i, standing := range cfg.StandingAssignments {
		if _, err := rrule.StrToRRule(standing.RRule); err != nil {
			return fmt.Errorf("invalid rrule in standingAssignments[%d]: %w", i, err)
		}
	}

	return nil
}

// CapScope returns the configured per-worker-per-unit cap scope
func (c *Config) CapScope() scheduling.UnitCapScope {
	return scheduling.UnitCapScope(c.UnitCapScope)
}

// Aliases returns the extra specialization aliases keyed by category
func (c *Config) Aliases() map[specialization.Category][]string {
	aliases := make(map[specialization.Category][]string, len(c.SpecializationAliases))
	for category, terms := range c.SpecializationAliases {
		aliases[specialization.Category(category)] = terms
	}
	return aliases
}

// StartDate parses the standing assignment's start date
func (s StandingAssignment) StartDate() (time.Time, error) {
	return time.Parse("2006-01-02", s.Start)
}

// findConfigFile searches for the named config file in current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
