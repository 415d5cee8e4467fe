package models

import "time"

// Profile is implemented by the user profile kinds (Persona and Personal)
// so the default-selection bookkeeping can be shared between them.
type Profile interface {
	ProfileID() string
	SetProfileID(id string)
	SetName(name string)
	Default() bool
	MarkDefault(v bool)
	Created() time.Time
	Stamp(created, updated time.Time)
}

// ProfileSettings is the per-kind settings record. It is persisted as the
// only element of the kind's settings collection.
type ProfileSettings struct {
	DefaultID    string            `json:"defaultId" toml:"default_id" yaml:"default_id"`
	CharacterMap map[string]string `json:"characterMap" toml:"character_map" yaml:"character_map"`
}

// Prune drops every reference to id. When the default pointed at id it is
// replaced by replacement (which may be empty).
func (s *ProfileSettings) Prune(id, replacement string) bool {
	changed := false
	if s.DefaultID == id {
		s.DefaultID = replacement
		changed = true
	}
	for character, mapped := range s.CharacterMap {
		if mapped == id {
			delete(s.CharacterMap, character)
			changed = true
		}
	}
	return changed
}
