package models

import "time"

// FontSlot names one of the semantic fonts used by the message renderer.
type FontSlot string

const (
	FontSlotNormal   FontSlot = "normal"
	FontSlotDialogue FontSlot = "dialogue"
	FontSlotItalic   FontSlot = "italic"
	FontSlotCode     FontSlot = "code"
)

// FontSlots lists every slot in render order.
var FontSlots = []FontSlot{FontSlotNormal, FontSlotDialogue, FontSlotItalic, FontSlotCode}

// FontSettings is a single-row table (ID=1).
type FontSettings struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	Version        int       `gorm:"not null;default:1" json:"version"`
	NormalFamily   string    `gorm:"not null" json:"normalFamily"`
	NormalSize     int       `gorm:"not null" json:"normalSize"`
	DialogueFamily string    `gorm:"not null" json:"dialogueFamily"`
	DialogueSize   int       `gorm:"not null" json:"dialogueSize"`
	ItalicFamily   string    `gorm:"not null" json:"italicFamily"`
	ItalicSize     int       `gorm:"not null" json:"italicSize"`
	CodeFamily     string    `gorm:"not null" json:"codeFamily"`
	CodeSize       int       `gorm:"not null" json:"codeSize"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FontFace is the family/size pair configured for a slot.
type FontFace struct {
	Family string `json:"family"`
	Size   int    `json:"size"`
}

// DefaultFontSettings returns the settings used before anything was saved.
func DefaultFontSettings() *FontSettings {
	return &FontSettings{
		ID:             1,
		Version:        1,
		NormalFamily:   "Noto Sans",
		NormalSize:     16,
		DialogueFamily: "Noto Serif",
		DialogueSize:   16,
		ItalicFamily:   "Noto Serif",
		ItalicSize:     16,
		CodeFamily:     "JetBrains Mono",
		CodeSize:       14,
	}
}

// Face returns the face configured for slot.
func (s *FontSettings) Face(slot FontSlot) (FontFace, bool) {
	switch slot {
	case FontSlotNormal:
		return FontFace{Family: s.NormalFamily, Size: s.NormalSize}, true
	case FontSlotDialogue:
		return FontFace{Family: s.DialogueFamily, Size: s.DialogueSize}, true
	case FontSlotItalic:
		return FontFace{Family: s.ItalicFamily, Size: s.ItalicSize}, true
	case FontSlotCode:
		return FontFace{Family: s.CodeFamily, Size: s.CodeSize}, true
	}
	return FontFace{}, false
}

// SetFace assigns face to slot. It reports false for an unknown slot.
func (s *FontSettings) SetFace(slot FontSlot, face FontFace) bool {
	switch slot {
	case FontSlotNormal:
		s.NormalFamily, s.NormalSize = face.Family, face.Size
	case FontSlotDialogue:
		s.DialogueFamily, s.DialogueSize = face.Family, face.Size
	case FontSlotItalic:
		s.ItalicFamily, s.ItalicSize = face.Family, face.Size
	case FontSlotCode:
		s.CodeFamily, s.CodeSize = face.Family, face.Size
	default:
		return false
	}
	return true
}
