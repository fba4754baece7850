package service

import (
	"context"
	"encoding/json"
	"fmt"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"
	"algolearn/internal/domain/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type AdminService struct {
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	auditRepo      repository.AuditLogRepository
	settingsRepo   repository.AppSettingsRepository
	adminEmail     string
}

func NewAdminService(
	userRepo repository.UserRepository,
	subRepo repository.SubmissionRepository,
	probRepo repository.ProblemRepository,
	auditRepo repository.AuditLogRepository,
	settingsRepo repository.AppSettingsRepository,
	adminEmail string,
) *AdminService {
	return &AdminService{
		userRepo:       userRepo,
		submissionRepo: subRepo,
		problemRepo:    probRepo,
		auditRepo:      auditRepo,
		settingsRepo:   settingsRepo,
		adminEmail:     adminEmail,
	}
}

type UserListResponse struct {
	Users []model.AdminUser `json:"users"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int, search string) (*UserListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	users, total, err := s.userRepo.List(ctx, limit, (page-1)*limit, search)
	if err != nil {
		return nil, err
	}
	return &UserListResponse{Users: users, Total: total, Page: page, Limit: limit}, nil
}

type BlockUserRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Action string `json:"action" validate:"required,oneof=block unblock"`
	Reason string `json:"reason"`
}

func (s *AdminService) SetUserBlocked(ctx context.Context, adminID string, req BlockUserRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	target, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if s.adminEmail != "" && target.Email == s.adminEmail {
		return fmt.Errorf("cannot modify admin account: %w", common.ErrForbidden)
	}

	block := req.Action == "block"
	var reason *string
	if block {
		r := req.Reason
		if r == "" {
			r = "No reason provided"
		}
		reason = &r
	}

	if err := s.userRepo.SetBlocked(ctx, req.UserID, block, reason); err != nil {
		return err
	}

	action := model.AuditUnblockUser
	if block {
		action = model.AuditBlockUser
	}
	s.logAction(ctx, adminID, action, "USER", &req.UserID, map[string]interface{}{
		"user_email": target.Email,
		"reason":     req.Reason,
	})
	return nil
}

func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID string) error {
	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if s.adminEmail != "" && target.Email == s.adminEmail {
		return fmt.Errorf("cannot modify admin account: %w", common.ErrForbidden)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logAction(ctx, adminID, model.AuditDeleteUser, "USER", &userID, map[string]interface{}{
		"user_email": target.Email,
	})
	return nil
}

type Analytics struct {
	TotalUsers          int                            `json:"total_users"`
	TotalProblems       int                            `json:"total_problems"`
	TotalSubmissions    int                            `json:"total_submissions"`
	SubmissionsByStatus map[model.SubmissionStatus]int `json:"submissions_by_status"`
}

func (s *AdminService) GetAnalytics(ctx context.Context) (*Analytics, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	problems, err := s.problemRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.submissionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &Analytics{
		TotalUsers:          users,
		TotalProblems:       problems,
		TotalSubmissions:    submissions,
		SubmissionsByStatus: byStatus,
	}, nil
}

// ListAuditLogs returns the back-office action trail, newest first.
func (s *AdminService) ListAuditLogs(ctx context.Context, page, limit int) ([]model.AuditLog, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.auditRepo.List(ctx, limit, (page-1)*limit)
}

// GetSettings returns the app settings map; unset keys fall back to their
// defaults, and stored "true"/"false" strings come back as booleans.
func (s *AdminService) GetSettings(ctx context.Context) (map[string]interface{}, error) {
	stored, err := s.settingsRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	settings := map[string]interface{}{
		model.SettingMaintenanceMode:    false,
		model.SettingAllowSignups:       true,
		model.SettingAllowGoogleOAuth:   true,
		model.SettingAllowEmailPassword: true,
	}
	for _, row := range stored {
		if _, known := settings[row.Key]; known {
			settings[row.Key] = coerceSettingValue(row.Value)
		}
	}
	return settings, nil
}

func coerceSettingValue(v string) interface{} {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}

type UpdateSettingRequest struct {
	Key   string      `json:"key" validate:"required,oneof=maintenanceMode allowSignups allowGoogleOAuth allowEmailPassword"`
	Value interface{} `json:"value"`
}

func (s *AdminService) UpdateSetting(ctx context.Context, adminID string, req UpdateSettingRequest) (*model.AppSetting, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}
	// Value is checked by hand: `required` would reject a legitimate false.
	if req.Value == nil {
		return nil, fmt.Errorf("missing setting value: %w", common.ErrValidation)
	}

	setting, err := s.settingsRepo.Upsert(ctx, req.Key, fmt.Sprintf("%v", req.Value))
	if err != nil {
		return nil, err
	}
	s.logAction(ctx, adminID, model.AuditUpdateSetting, "APP_SETTINGS", nil, map[string]interface{}{
		"key":   req.Key,
		"value": req.Value,
	})
	return setting, nil
}

// logAction appends an audit entry; failures are logged, never surfaced.
func (s *AdminService) logAction(ctx context.Context, adminID, action, targetType string, targetID *string, details map[string]interface{}) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		log.WithError(err).Warn("failed to encode audit details")
		detailsJSON = nil
	}
	entry := &model.AuditLog{
		ID:         uuid.NewString(),
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    detailsJSON,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.WithError(err).WithField("action", action).Warn("failed to write audit log")
	}
}
