package model

import "time"

// Recognized app_settings keys. Unknown keys are rejected at the API edge.
const (
	SettingMaintenanceMode    = "maintenanceMode"
	SettingAllowSignups       = "allowSignups"
	SettingAllowGoogleOAuth   = "allowGoogleOAuth"
	SettingAllowEmailPassword = "allowEmailPassword"
)

// AppSetting is a key/value row. Values are stored as strings; "true" and
// "false" are rendered as booleans when settings are read back.
type AppSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
