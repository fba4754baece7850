package service

import (
	"context"

	"algolearn/internal/domain/model"
	"algolearn/internal/domain/repository"
)

type ModuleService struct {
	moduleRepo repository.ModuleRepository
}

func NewModuleService(moduleRepo repository.ModuleRepository) *ModuleService {
	return &ModuleService{moduleRepo: moduleRepo}
}

func (s *ModuleService) ListModules(ctx context.Context) ([]model.Module, error) {
	return s.moduleRepo.ListWithContent(ctx)
}
