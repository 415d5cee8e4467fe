package models

import "time"

// DialogueNode is one message in a character's dialogue tree. Root nodes
// have an empty ParentID.
type DialogueNode struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	CharacterID string    `gorm:"size:128;not null;index:idx_dialogue_character" json:"characterId"`
	ParentID    string    `gorm:"size:64;index:idx_dialogue_parent" json:"parentId"`
	Role        string    `gorm:"size:32;not null" json:"role"`
	Content     string    `gorm:"type:text" json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DialogueCursor records which node a character's conversation is
// currently positioned on.
type DialogueCursor struct {
	CharacterID   string    `gorm:"primaryKey;size:128" json:"characterId"`
	CurrentNodeID string    `gorm:"size:64;not null" json:"currentNodeId"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
