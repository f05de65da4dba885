package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	Inngest       InngestConfig
	// ProjectID is the GCP project for the live feed. Empty disables live sync.
	ProjectID string
	DryRun    bool
	LogFormat string
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether result and innings-break cards can be posted.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type InngestConfig struct {
	SigningKey string
	EventKey   string
	AppID      string
	Dev        bool
}

// Enabled reports whether completed matches go through the durable workflow.
func (c InngestConfig) Enabled() bool {
	return c.AppID != ""
}
