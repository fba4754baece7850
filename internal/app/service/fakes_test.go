package service

import (
	"context"
	"database/sql"
	"time"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"
	"algolearn/internal/domain/repository"
	"algolearn/internal/domain/streak"
)

// In-memory repository fakes. Only the methods the services under test reach
// have real behavior; the rest satisfy the interfaces.

type fakeProblemRepo struct {
	problems  map[string]*model.Problem
	testCases map[string][]model.TestCase
	listErr   error
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{
		problems:  map[string]*model.Problem{},
		testCases: map[string][]model.TestCase{},
	}
}

func (f *fakeProblemRepo) add(p *model.Problem, tcs []model.TestCase) {
	f.problems[p.ID] = p
	f.testCases[p.ID] = tcs
}

func (f *fakeProblemRepo) CreateProblem(ctx context.Context, tx *sql.Tx, p *model.Problem) error {
	f.problems[p.ID] = p
	return nil
}

func (f *fakeProblemRepo) AddTestCases(ctx context.Context, tx *sql.Tx, problemID string, tcs []model.TestCase) error {
	f.testCases[problemID] = tcs
	return nil
}

func (f *fakeProblemRepo) FindByID(ctx context.Context, id string) (*model.Problem, error) {
	p, ok := f.problems[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (f *fakeProblemRepo) FindBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	for _, p := range f.problems {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeProblemRepo) GetTestCases(ctx context.Context, problemID string) ([]model.TestCase, error) {
	return f.testCases[problemID], nil
}

func (f *fakeProblemRepo) List(ctx context.Context, moduleID string) ([]model.ProblemSummary, error) {
	return f.ListAll(ctx)
}

func (f *fakeProblemRepo) ListAll(ctx context.Context) ([]model.ProblemSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	summaries := []model.ProblemSummary{}
	for _, p := range f.problems {
		summaries = append(summaries, model.ProblemSummary{ID: p.ID, Title: p.Title, Slug: p.Slug})
	}
	return summaries, nil
}

func (f *fakeProblemRepo) Count(ctx context.Context) (int, error) {
	return len(f.problems), nil
}

type fakeSubmissionRepo struct {
	created   []*model.Submission
	createErr error
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	if f.createErr != nil {
		return f.createErr
	}
	sub.CreatedAt = time.Now()
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeSubmissionRepo) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	for _, s := range f.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeSubmissionRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Submission, int, error) {
	out := []model.Submission{}
	for _, s := range f.created {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, len(out), nil
}

func (f *fakeSubmissionRepo) StatsForUser(ctx context.Context, userID string) (*model.ProgressStats, error) {
	stats := &model.ProgressStats{}
	solved := map[string]bool{}
	for _, s := range f.created {
		if s.UserID != userID {
			continue
		}
		stats.TotalSubmissions++
		if s.Status == model.StatusAccepted {
			stats.AcceptedSubmissions++
			solved[s.ProblemID] = true
		}
	}
	stats.SolvedProblems = len(solved)
	return stats, nil
}

func (f *fakeSubmissionRepo) Count(ctx context.Context) (int, error) {
	return len(f.created), nil
}

func (f *fakeSubmissionRepo) CountByStatus(ctx context.Context) (map[model.SubmissionStatus]int, error) {
	out := map[model.SubmissionStatus]int{}
	for _, s := range f.created {
		out[s.Status]++
	}
	return out, nil
}

type fakeUserRepo struct {
	users          map[string]*model.User
	applyStreakErr error
	streakCalls    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return common.ErrConflict
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

// Reads return copies so callers that scrub fields (hashed password) cannot
// corrupt the stored row, same as a real database.
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, upd repository.ProfileUpdate) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PreferredLanguage != nil {
		u.PreferredLanguage = *upd.PreferredLanguage
	}
	if upd.ExperienceLevel != nil {
		u.ExperienceLevel = *upd.ExperienceLevel
	}
	if upd.OnboardingCompleted != nil {
		u.OnboardingCompleted = *upd.OnboardingCompleted
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int, search string) ([]model.AdminUser, int, error) {
	out := []model.AdminUser{}
	for _, u := range f.users {
		out = append(out, model.AdminUser{User: *u})
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) SetBlocked(ctx context.Context, id string, blocked bool, reason *string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.IsBlocked = blocked
	u.BlockedReason = reason
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ApplyStreak(ctx context.Context, id string, now time.Time) (int, error) {
	f.streakCalls++
	if f.applyStreakErr != nil {
		return 0, f.applyStreakErr
	}
	u, ok := f.users[id]
	if !ok {
		return 0, common.ErrNotFound
	}
	newStreak, newLast := streak.Update(u.LastActiveDate, u.Streak, now)
	u.Streak = newStreak
	u.LastActiveDate = &newLast
	return newStreak, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return len(f.users), nil
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, limit, offset int) ([]model.AuditLog, error) {
	out := []model.AuditLog{}
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings map[string]string
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[string]string{}}
}

func (f *fakeSettingsRepo) List(ctx context.Context) ([]model.AppSetting, error) {
	out := []model.AppSetting{}
	for k, v := range f.settings {
		out = append(out, model.AppSetting{Key: k, Value: v})
	}
	return out, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, key, value string) (*model.AppSetting, error) {
	f.settings[key] = value
	return &model.AppSetting{Key: key, Value: value, UpdatedAt: time.Now()}, nil
}

type fakeDailyRepo struct {
	challenges []*model.DailyChallenge
	createErr  error
}

func (f *fakeDailyRepo) FindInRange(ctx context.Context, from, to time.Time) (*model.DailyChallenge, error) {
	for _, dc := range f.challenges {
		if !dc.Date.Before(from) && dc.Date.Before(to) {
			return dc, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeDailyRepo) Create(ctx context.Context, dc *model.DailyChallenge) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.challenges {
		if existing.Date.Equal(dc.Date) {
			return common.ErrConflict
		}
	}
	f.challenges = append(f.challenges, dc)
	return nil
}
