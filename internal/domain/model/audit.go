package model

import (
	"encoding/json"
	"time"
)

const (
	AuditBlockUser     = "BLOCK_USER"
	AuditUnblockUser   = "UNBLOCK_USER"
	AuditDeleteUser    = "DELETE_USER"
	AuditUpdateSetting = "UPDATE_SETTING"
)

type AuditLog struct {
	ID         string          `json:"id"`
	AdminID    string          `json:"admin_id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   *string         `json:"target_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
