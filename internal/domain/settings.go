package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Well-known rule keys stored in app_settings. Values are opaque structured
// documents; consumers apply defaults when a key is absent.
const (
	RuleKeyAdaptationStrategy = "adaptation_strategy"
	RuleKeyModerationLimits   = "moderation_limits"
	RuleKeyManualEditing      = "manual_editing"
)

var ruleDefaults = map[string]json.RawMessage{
	RuleKeyAdaptationStrategy: json.RawMessage(`{"focalPointLogic":"face-centric","layoutGuidance":{"safeZone":{"top":0.05,"bottom":0.05,"left":0.05,"right":0.05},"logoSize":0.1}}`),
	RuleKeyModerationLimits:   json.RawMessage(`{"allowedTypes":["psd","jpg","jpeg","png"],"maxFiles":20,"maxSizeMb":50,"nsfwAlertsActive":false}`),
	RuleKeyManualEditing:      json.RawMessage(`{"enabled":true}`),
}

// DefaultRuleValue returns the built-in document served when a known rule key
// has no stored row. Keys outside the well-known set have no default.
func DefaultRuleValue(key string) (json.RawMessage, bool) {
	v, ok := ruleDefaults[key]
	return v, ok
}

// AppSetting is one admin-managed behavioral rule keyed by name.
type AppSetting struct {
	RuleKey     string
	RuleValue   json.RawMessage
	Description string
	UpdatedAt   time.Time
}

// ModerationLimits bounds uploads; zero values fall back to config defaults.
type ModerationLimits struct {
	AllowedTypes     []string `json:"allowedTypes"`
	MaxFiles         int      `json:"maxFiles"`
	MaxSizeMB        int      `json:"maxSizeMb"`
	NsfwAlertsActive bool     `json:"nsfwAlertsActive"`
}

// ManualEditingRule toggles post-generation edits of derived assets.
type ManualEditingRule struct {
	Enabled bool `json:"enabled"`
}

// TextStyleSet is an admin-managed preset of text styles applied by clients.
type TextStyleSet struct {
	ID        uuid.UUID
	Name      string
	Styles    json.RawMessage
	IsActive  bool
	CreatedAt time.Time
}
