package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/letsassist",
		Signup: SignupPolicy{
			AutoApprove:   true,
			CountAttended: false,
		},
		RecurrenceTemplates: []RecurrenceTemplate{
			{
				Name:       "saturday-mornings",
				RRule:      "FREQ=WEEKLY;BYDAY=SA;COUNT=6",
				StartTime:  "09:00",
				EndTime:    "12:00",
				Volunteers: 5,
			},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/letsassist",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := &Config{
		Signup: SignupPolicy{AutoApprove: true},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseURL")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/letsassist",
		RecurrenceTemplates: []RecurrenceTemplate{
			{
				Name:       "broken",
				RRule:      "FREQ=NONSENSE",
				StartTime:  "09:00",
				EndTime:    "12:00",
				Volunteers: 3,
			},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_TemplateMissingFields(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/letsassist",
		RecurrenceTemplates: []RecurrenceTemplate{
			{
				Name:  "incomplete",
				RRule: "FREQ=WEEKLY;BYDAY=SU",
				// Missing times and volunteers
			},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lets_assist_config.yaml")

	content := `databaseURL: postgres://localhost:5432/letsassist
signup:
  autoApprove: true
  countAttended: true
recurrenceTemplates:
  - name: weekday-evenings
    rrule: FREQ=WEEKLY;BYDAY=MO,WE,FR;COUNT=9
    startTime: "18:00"
    endTime: "20:00"
    volunteers: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/letsassist", cfg.DatabaseURL)
	assert.True(t, cfg.Signup.AutoApprove)
	assert.True(t, cfg.Signup.CountAttended)
	require.Len(t, cfg.RecurrenceTemplates, 1)
	assert.Equal(t, "weekday-evenings", cfg.RecurrenceTemplates[0].Name)
	assert.Equal(t, 4, cfg.RecurrenceTemplates[0].Volunteers)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lets_assist_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("databaseURL: [broken"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
