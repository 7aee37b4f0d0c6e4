package configs

import "time"

// Ads configures access to the Telegram Ads console. The console has no
// API, so campaign pages and CSV exports are fetched from BaseURL with a
// browser-looking User-Agent.
type Ads struct {
	// BaseURL is the console root all campaign and export paths are
	// resolved against.
	BaseURL string `env:"BASE_URL" envDefault:"https://ads.telegram.org"`

	// UserAgent is sent with every request; the console rejects clients
	// that do not present one.
	UserAgent string `env:"USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`

	// Timeout bounds every page and export fetch so one unreachable
	// campaign cannot stall the whole batch.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// CampaignIDs seeds the campaigns to collect when the caller passes
	// none. With this empty too, the collector falls back to every
	// campaign already known in the registry.
	CampaignIDs []string `env:"CAMPAIGN_IDS" envSeparator:","`
}
