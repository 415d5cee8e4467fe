package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogueNode_JSONUsesCamelCase(t *testing.T) {
	node := DialogueNode{
		ID:          "n1",
		CharacterID: "char-1",
		ParentID:    "n0",
		Role:        "user",
		Content:     "hi",
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(node)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, map[string]any{
		"id":          "n1",
		"characterId": "char-1",
		"parentId":    "n0",
		"role":        "user",
		"content":     "hi",
		"createdAt":   "2026-01-02T03:04:05Z",
	}, fields)
}
