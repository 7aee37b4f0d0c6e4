package domain

import "time"

// ExportKind distinguishes the two CSV exports published for a campaign.
type ExportKind string

const (
	ExportViews  ExportKind = "views"
	ExportBudget ExportKind = "budget"
)

// Campaign is one advertising unit tracked by identifier on the Telegram
// Ads platform. Metadata fields are pointers because the status page can
// omit any of them; absence is data, not an error.
type Campaign struct {
	ID            string    `json:"campaign_id"`
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	BotLink       *string   `json:"bot_link"`
	TargetChannel *string   `json:"target_channel"`
	FirstSeen     time.Time `json:"first_seen"`
	LastSeen      time.Time `json:"last_seen"`
	IsActive      bool      `json:"is_active"`
	LastStatus    *string   `json:"last_status"`
	CPM           *float64  `json:"cpm"`
	Views         *int64    `json:"views"`
}

// CampaignInfo is the result of scraping one campaign status page. Every
// field is extracted independently; a field the page layout omits is nil.
// ExportLinks maps export kind to the service-relative CSV path discovered
// in the page's inline scripts and may hold zero, one or two entries.
type CampaignInfo struct {
	CampaignID    string
	Title         *string
	Description   *string
	BotLink       *string
	TargetChannel *string
	Status        *string
	CPM           *float64
	Views         *int64
	IsActive      bool
	ExportLinks   map[ExportKind]string
}
