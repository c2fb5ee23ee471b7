package commands

import (
	"time"

	"metascrape/internal/components/telemetry"
	"metascrape/internal/scrapers/metacritic"
)

type Config struct {
	BaseUrl   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	// Timeout is in seconds, 0 leaves the transport default.
	Timeout          int                  `json:"timeout"`
	CloudflareBypass bool                 `json:"cloudflare_bypass"`
	Otlp             telemetry.OtlpConfig `json:"otlp"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:   metacritic.DEFAULT_BASE_URL,
		UserAgent: metacritic.DEFAULT_USER_AGENT,
	}
}

func (c Config) clientOptions(output telemetry.MessageOutput) metacritic.ClientOptions {
	return metacritic.ClientOptions{
		BaseUrl:          c.BaseUrl,
		UserAgent:        c.UserAgent,
		Timeout:          time.Duration(c.Timeout) * time.Second,
		CloudflareBypass: c.CloudflareBypass,
		Output:           output,
	}
}
