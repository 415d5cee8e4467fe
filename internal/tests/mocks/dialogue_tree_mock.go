package mocks

import (
	"context"

	"storyloom/internal/models"
)

type DialogueTreeMock struct {
	GetRecentBranchesFunc func(ctx context.Context, characterID string, limit int) ([]models.Branch, error)
	SwitchBranchFunc      func(ctx context.Context, characterID, nodeID string) (bool, error)
}

func (m *DialogueTreeMock) GetRecentBranches(ctx context.Context, characterID string, limit int) ([]models.Branch, error) {
	if m.GetRecentBranchesFunc != nil {
		return m.GetRecentBranchesFunc(ctx, characterID, limit)
	}
	return []models.Branch{}, nil
}

func (m *DialogueTreeMock) SwitchBranch(ctx context.Context, characterID, nodeID string) (bool, error) {
	if m.SwitchBranchFunc != nil {
		return m.SwitchBranchFunc(ctx, characterID, nodeID)
	}
	return true, nil
}
