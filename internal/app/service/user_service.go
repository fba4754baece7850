package service

import (
	"context"

	"algolearn/internal/domain/model"
	"algolearn/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

type UpdateProfileRequest struct {
	Name                *string `json:"name"`
	PreferredLanguage   *string `json:"preferred_language"`
	ExperienceLevel     *string `json:"experience_level"`
	OnboardingCompleted *bool   `json:"onboarding_completed"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, id, repository.ProfileUpdate{
		Name:                req.Name,
		PreferredLanguage:   req.PreferredLanguage,
		ExperienceLevel:     req.ExperienceLevel,
		OnboardingCompleted: req.OnboardingCompleted,
	})
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}
