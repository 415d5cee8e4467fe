package models

import "time"

// Persona is a user-authored profile substituted into prompts to represent
// the human side of a roleplay.
type Persona struct {
	ID          string    `json:"id" toml:"id" yaml:"id"`
	Name        string    `json:"name" toml:"name" yaml:"name"`
	Description string    `json:"description" toml:"description" yaml:"description"`
	Avatar      string    `json:"avatar,omitempty" toml:"avatar,omitempty" yaml:"avatar,omitempty"`
	IsDefault   bool      `json:"isDefault" toml:"is_default" yaml:"is_default"`
	CreatedAt   time.Time `json:"createdAt" toml:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" toml:"updated_at" yaml:"updated_at"`
}

func (p *Persona) ProfileID() string      { return p.ID }
func (p *Persona) SetProfileID(id string) { p.ID = id }
func (p *Persona) SetName(name string)    { p.Name = name }
func (p *Persona) Default() bool          { return p.IsDefault }
func (p *Persona) MarkDefault(v bool)     { p.IsDefault = v }
func (p *Persona) Created() time.Time     { return p.CreatedAt }

func (p *Persona) Stamp(created, updated time.Time) {
	p.CreatedAt = created
	p.UpdatedAt = updated
}
