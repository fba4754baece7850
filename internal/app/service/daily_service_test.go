package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDailyFixture(problemCount int) (*DailyService, *fakeDailyRepo, *fakeProblemRepo) {
	dailyRepo := &fakeDailyRepo{}
	probRepo := newFakeProblemRepo()
	for i := 0; i < problemCount; i++ {
		id := string(rune('a' + i))
		probRepo.add(&model.Problem{ID: "prob-" + id, Title: "Problem " + id, Slug: "problem-" + id}, nil)
	}
	return NewDailyService(dailyRepo, probRepo), dailyRepo, probRepo
}

func TestGetOrCreateIsIdempotentWithinADay(t *testing.T) {
	svc, dailyRepo, _ := newDailyFixture(5)
	now := time.Date(2026, time.April, 2, 9, 30, 0, 0, time.UTC)

	first, err := svc.GetOrCreate(context.Background(), now)
	require.NoError(t, err)
	require.NotNil(t, first.Problem)
	assert.Equal(t, first.ProblemID, first.Problem.ID)
	assert.Equal(t, time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC), first.Date)

	// A later call the same day returns the same challenge, not a new pick.
	second, err := svc.GetOrCreate(context.Background(), now.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ProblemID, second.ProblemID)
	assert.Len(t, dailyRepo.challenges, 1)
}

func TestGetOrCreateNewDayNewChallenge(t *testing.T) {
	svc, dailyRepo, _ := newDailyFixture(5)
	day1 := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)

	first, err := svc.GetOrCreate(context.Background(), day1)
	require.NoError(t, err)

	second, err := svc.GetOrCreate(context.Background(), day1.Add(24*time.Hour))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, dailyRepo.challenges, 2)
}

func TestGetOrCreateNoProblems(t *testing.T) {
	svc, _, _ := newDailyFixture(0)

	_, err := svc.GetOrCreate(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGetOrCreateLosingRaceReturnsWinner(t *testing.T) {
	svc, dailyRepo, probRepo := newDailyFixture(3)
	now := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)
	midnight := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)

	// Simulate a concurrent winner: the row exists by the time our insert
	// runs, so Create reports a conflict.
	winner := &model.DailyChallenge{ID: "winner", ProblemID: "prob-a", Date: midnight}
	dailyRepo.createErr = common.ErrConflict
	dailyRepo.challenges = nil

	// First lookup must miss so the service goes down the create path.
	// Add the winner through a repo whose FindInRange only sees it on the
	// second read.
	reread := &rereadDailyRepo{inner: dailyRepo, winner: winner}
	svc = NewDailyService(reread, probRepo)

	got, err := svc.GetOrCreate(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "winner", got.ID)
	assert.Equal(t, "prob-a", got.ProblemID)
}

// rereadDailyRepo misses the first FindInRange and returns the winner row on
// subsequent reads, mimicking a lost creation race.
type rereadDailyRepo struct {
	inner  *fakeDailyRepo
	winner *model.DailyChallenge
	reads  int
}

func (r *rereadDailyRepo) FindInRange(ctx context.Context, from, to time.Time) (*model.DailyChallenge, error) {
	r.reads++
	if r.reads == 1 {
		return nil, common.ErrNotFound
	}
	return r.winner, nil
}

func (r *rereadDailyRepo) Create(ctx context.Context, dc *model.DailyChallenge) error {
	return common.ErrConflict
}
