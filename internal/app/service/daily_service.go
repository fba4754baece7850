package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"
	"algolearn/internal/domain/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type DailyService struct {
	dailyRepo   repository.DailyChallengeRepository
	problemRepo repository.ProblemRepository
}

func NewDailyService(dailyRepo repository.DailyChallengeRepository, probRepo repository.ProblemRepository) *DailyService {
	return &DailyService{dailyRepo: dailyRepo, problemRepo: probRepo}
}

// GetOrCreate returns today's challenge, lazily creating it from a uniformly
// random problem on the first request of the day. The lookup uses the exact
// [midnight, midnight+24h) window so a stray future-dated row can never
// shadow today. Losing a concurrent creation race falls back to re-reading
// the winner, so callers always converge on one row per day.
func (s *DailyService) GetOrCreate(ctx context.Context, now time.Time) (*model.DailyChallenge, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24 * time.Hour)

	dc, err := s.dailyRepo.FindInRange(ctx, from, to)
	if err == nil {
		return s.attachProblem(ctx, dc)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	problems, err := s.problemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(problems) == 0 {
		return nil, common.Errorf("no problems available: %w", common.ErrNotFound)
	}

	picked := problems[rand.Intn(len(problems))]
	dc = &model.DailyChallenge{
		ID:        uuid.NewString(),
		ProblemID: picked.ID,
		Date:      from,
	}

	if err := s.dailyRepo.Create(ctx, dc); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// Another request created today's challenge first; return theirs.
			log.WithField("date", from.Format("2006-01-02")).Debug("daily challenge race lost, re-reading")
			dc, err = s.dailyRepo.FindInRange(ctx, from, to)
			if err != nil {
				return nil, err
			}
			return s.attachProblem(ctx, dc)
		}
		return nil, err
	}

	return s.attachProblem(ctx, dc)
}

func (s *DailyService) attachProblem(ctx context.Context, dc *model.DailyChallenge) (*model.DailyChallenge, error) {
	problem, err := s.problemRepo.FindByID(ctx, dc.ProblemID)
	if err != nil {
		return nil, common.Errorf("failed to load challenge problem: %w", err)
	}
	dc.Problem = problem
	return dc, nil
}
