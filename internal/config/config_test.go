package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "cricket.db")
	t.Setenv("PORT", "8080")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("INNGEST_APP_ID", "")

	cfg := Load()

	assert.Equal(t, "cricket.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./migrations", cfg.MigrationsDir)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Slack.Enabled())
	assert.False(t, cfg.Inngest.Enabled())
}

func TestGetBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback bool
		expected bool
	}{
		{"unset", "", true, true},
		{"true", "true", false, true},
		{"numeric", "0", true, false},
		{"garbage falls back", "maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WICKETKEEPER_TEST_BOOL", tt.value)
			assert.Equal(t, tt.expected, getBool("WICKETKEEPER_TEST_BOOL", tt.fallback))
		})
	}
}

func TestSlackEnabled(t *testing.T) {
	assert.False(t, SlackConfig{Token: "xoxb"}.Enabled())
	assert.True(t, SlackConfig{Token: "xoxb", ChannelID: "C1"}.Enabled())
}
