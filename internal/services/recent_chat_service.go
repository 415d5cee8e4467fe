package services

import (
	"context"
	"fmt"
	"strings"

	"storyloom/internal/events"
	"storyloom/internal/models"
)

const (
	DefaultRecentChatLimit = 5
	previewRunes           = 80
)

// DialogueTree is the narrow view of the dialogue engine the recent chats
// list needs. repositories.DialogueRepository satisfies it.
type DialogueTree interface {
	GetRecentBranches(ctx context.Context, characterID string, limit int) ([]models.Branch, error)
	SwitchBranch(ctx context.Context, characterID, nodeID string) (bool, error)
}

type RecentChatService interface {
	Startup(ctx context.Context)
	ListRecentChats(characterID string, limit int) ([]models.Branch, error)
	SwitchChat(characterID, nodeID string) error
}

type recentChatService struct {
	tree         DialogueTree
	defaultLimit int
	ctx          context.Context
}

func NewRecentChatService(tree DialogueTree, defaultLimit int) RecentChatService {
	if defaultLimit <= 0 {
		defaultLimit = DefaultRecentChatLimit
	}
	return &recentChatService{tree: tree, defaultLimit: defaultLimit}
}

func (s *recentChatService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *recentChatService) context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *recentChatService) ListRecentChats(characterID string, limit int) ([]models.Branch, error) {
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, ErrCharacterRequired
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}

	branches, err := s.tree.GetRecentBranches(s.context(), characterID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: recent chats for %s: %w", characterID, err)
	}
	if len(branches) > limit {
		branches = branches[:limit]
	}

	out := make([]models.Branch, 0, len(branches))
	for _, b := range branches {
		b.Preview = truncateRunes(collapseSpace(b.Preview), previewRunes)
		b.Title = collapseSpace(b.Title)
		if b.Title == "" {
			b.Title = b.Preview
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *recentChatService) SwitchChat(characterID, nodeID string) error {
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return ErrCharacterRequired
	}
	nodeID = strings.TrimSpace(nodeID)
	if nodeID == "" {
		return fmt.Errorf("node id is required")
	}

	ok, err := s.tree.SwitchBranch(s.context(), characterID, nodeID)
	if err != nil {
		return fmt.Errorf("service: switch branch %s: %w", nodeID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrBranchSwitchFailed, nodeID)
	}
	events.Emit(s.context(), events.BranchSwitched, events.BranchSwitchedEvent{CharacterID: characterID, NodeID: nodeID})
	return nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
