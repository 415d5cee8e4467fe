package models

import "time"

// Branch is a leaf of a character's dialogue tree, presented as one entry
// of the recent chats list.
type Branch struct {
	NodeID       string    `json:"nodeId"`
	Title        string    `json:"title"`
	MessageCount int       `json:"messageCount"`
	Preview      string    `json:"preview"`
	IsCurrent    bool      `json:"isCurrent"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
