package repository

import (
	"context"
	"database/sql"
	"fmt"

	"algolearn/internal/domain/model"
)

type ModuleRepository interface {
	// ListWithContent returns all modules ordered by sort_order, each with
	// its ordered topics and problem summaries attached.
	ListWithContent(ctx context.Context) ([]model.Module, error)
}

type pgModuleRepository struct {
	db *sql.DB
}

func NewPgModuleRepository(db *sql.DB) ModuleRepository {
	return &pgModuleRepository{db: db}
}

func (r *pgModuleRepository) ListWithContent(ctx context.Context) ([]model.Module, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, sort_order, created_at, updated_at
		 FROM modules ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("pgModuleRepository.ListWithContent modules: %w", err)
	}
	defer rows.Close()

	modules := []model.Module{}
	index := map[string]int{}
	for rows.Next() {
		var m model.Module
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgModuleRepository.ListWithContent scan module: %w", err)
		}
		m.Topics = []model.Topic{}
		m.Problems = []model.ProblemSummary{}
		index[m.ID] = len(modules)
		modules = append(modules, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgModuleRepository.ListWithContent modules rows.Err: %w", err)
	}

	topicRows, err := r.db.QueryContext(ctx,
		`SELECT id, module_id, title, content, sort_order, created_at
		 FROM topics ORDER BY module_id ASC, sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("pgModuleRepository.ListWithContent topics: %w", err)
	}
	defer topicRows.Close()

	for topicRows.Next() {
		var t model.Topic
		if err := topicRows.Scan(&t.ID, &t.ModuleID, &t.Title, &t.Content, &t.SortOrder, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgModuleRepository.ListWithContent scan topic: %w", err)
		}
		if i, ok := index[t.ModuleID]; ok {
			modules[i].Topics = append(modules[i].Topics, t)
		}
	}
	if err = topicRows.Err(); err != nil {
		return nil, fmt.Errorf("pgModuleRepository.ListWithContent topics rows.Err: %w", err)
	}

	problemRows, err := r.db.QueryContext(ctx,
		`SELECT id, module_id, title, slug, difficulty, sort_order
		 FROM problems ORDER BY module_id ASC, sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("pgModuleRepository.ListWithContent problems: %w", err)
	}
	defer problemRows.Close()

	for problemRows.Next() {
		var p model.ProblemSummary
		if err := problemRows.Scan(&p.ID, &p.ModuleID, &p.Title, &p.Slug, &p.Difficulty, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("pgModuleRepository.ListWithContent scan problem: %w", err)
		}
		if i, ok := index[p.ModuleID]; ok {
			modules[i].Problems = append(modules[i].Problems, p)
		}
	}
	if err = problemRows.Err(); err != nil {
		return nil, fmt.Errorf("pgModuleRepository.ListWithContent problems rows.Err: %w", err)
	}

	return modules, nil
}
