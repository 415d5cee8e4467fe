package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storyloom/internal/models"
)

// DialogueRepository stores each character's conversation as a tree of
// messages. Every leaf is one branch the user can switch to.
type DialogueRepository interface {
	AppendMessage(ctx context.Context, characterID, parentID, role, content string) (*models.DialogueNode, error)
	GetRecentBranches(ctx context.Context, characterID string, limit int) ([]models.Branch, error)
	SwitchBranch(ctx context.Context, characterID, nodeID string) (bool, error)
	CurrentNode(ctx context.Context, characterID string) (string, error)
}

type dialogueRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDialogueRepository(db *gorm.DB) DialogueRepository {
	return &dialogueRepository{db: db, now: time.Now}
}

func (r *dialogueRepository) AppendMessage(ctx context.Context, characterID, parentID, role, content string) (*models.DialogueNode, error) {
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}
	if role != "user" && role != "assistant" && role != "system" {
		return nil, fmt.Errorf("unsupported role %q", role)
	}

	node := models.DialogueNode{
		ID:          uuid.NewString(),
		CharacterID: characterID,
		ParentID:    strings.TrimSpace(parentID),
		Role:        role,
		Content:     content,
		CreatedAt:   r.now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if node.ParentID != "" {
			var parent models.DialogueNode
			if err := tx.Where("id = ? AND character_id = ?", node.ParentID, characterID).Take(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("parent node %s not found for character %s", node.ParentID, characterID)
				}
				return err
			}
		}
		if err := tx.Create(&node).Error; err != nil {
			return err
		}
		return upsertCursor(tx, characterID, node.ID, node.CreatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}
	return &node, nil
}

func (r *dialogueRepository) GetRecentBranches(ctx context.Context, characterID string, limit int) ([]models.Branch, error) {
	var nodes []models.DialogueNode
	if err := r.db.WithContext(ctx).Where("character_id = ?", characterID).Order("created_at asc").Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("listing dialogue nodes: %w", err)
	}
	if len(nodes) == 0 {
		return []models.Branch{}, nil
	}

	current, err := r.CurrentNode(ctx, characterID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.DialogueNode, len(nodes))
	hasChild := make(map[string]bool, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
		if nodes[i].ParentID != "" {
			hasChild[nodes[i].ParentID] = true
		}
	}

	leaves := make([]*models.DialogueNode, 0)
	for i := range nodes {
		if !hasChild[nodes[i].ID] {
			leaves = append(leaves, &nodes[i])
		}
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		if leaves[i].CreatedAt.Equal(leaves[j].CreatedAt) {
			return leaves[i].ID > leaves[j].ID
		}
		return leaves[i].CreatedAt.After(leaves[j].CreatedAt)
	})
	if limit > 0 && len(leaves) > limit {
		leaves = leaves[:limit]
	}

	branches := make([]models.Branch, 0, len(leaves))
	for _, leaf := range leaves {
		depth, title := walkBranch(byID, leaf)
		branches = append(branches, models.Branch{
			NodeID:       leaf.ID,
			Title:        title,
			MessageCount: depth,
			Preview:      leaf.Content,
			IsCurrent:    leaf.ID == current,
			UpdatedAt:    leaf.CreatedAt,
		})
	}
	return branches, nil
}

// walkBranch follows parent links from leaf to the root. It returns the
// number of messages on the path and the earliest user message.
func walkBranch(byID map[string]*models.DialogueNode, leaf *models.DialogueNode) (int, string) {
	depth := 0
	title := ""
	for node := leaf; node != nil && depth <= len(byID); node = byID[node.ParentID] {
		depth++
		if node.Role == "user" {
			title = node.Content
		}
		if node.ParentID == "" {
			break
		}
	}
	return depth, title
}

func (r *dialogueRepository) SwitchBranch(ctx context.Context, characterID, nodeID string) (bool, error) {
	var node models.DialogueNode
	err := r.db.WithContext(ctx).Where("id = ? AND character_id = ?", nodeID, characterID).Take(&node).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("finding node %s: %w", nodeID, err)
	}
	if err := upsertCursor(r.db.WithContext(ctx), characterID, node.ID, r.now()); err != nil {
		return false, fmt.Errorf("moving cursor: %w", err)
	}
	return true, nil
}

func (r *dialogueRepository) CurrentNode(ctx context.Context, characterID string) (string, error) {
	var cursor models.DialogueCursor
	if err := r.db.WithContext(ctx).Where("character_id = ?", characterID).Take(&cursor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading cursor: %w", err)
	}
	return cursor.CurrentNodeID, nil
}

func upsertCursor(db *gorm.DB, characterID, nodeID string, at time.Time) error {
	cursor := models.DialogueCursor{CharacterID: characterID, CurrentNodeID: nodeID, UpdatedAt: at}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "character_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_node_id", "updated_at"}),
	}).Create(&cursor).Error
}
