package service

import (
	"context"
	"errors"
	"testing"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProblemBySlugOrID(t *testing.T) {
	probRepo := newFakeProblemRepo()
	probRepo.add(&model.Problem{ID: "prob-1", Title: "Two Sum", Slug: "two-sum"}, []model.TestCase{
		{Input: "1", ExpectedOutput: "1"},
	})
	svc := NewProblemService(probRepo, nil)

	bySlug, err := svc.GetProblem(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.Equal(t, "prob-1", bySlug.ID)
	assert.Len(t, bySlug.TestCases, 1)

	byID, err := svc.GetProblem(context.Background(), "prob-1")
	require.NoError(t, err)
	assert.Equal(t, "two-sum", byID.Slug)

	_, err = svc.GetProblem(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
