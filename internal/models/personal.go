package models

import "time"

// Personal mirrors Persona and adds a free-form personality section.
type Personal struct {
	ID          string    `json:"id" toml:"id" yaml:"id"`
	Name        string    `json:"name" toml:"name" yaml:"name"`
	Description string    `json:"description" toml:"description" yaml:"description"`
	Personality string    `json:"personality" toml:"personality" yaml:"personality"`
	Avatar      string    `json:"avatar,omitempty" toml:"avatar,omitempty" yaml:"avatar,omitempty"`
	IsDefault   bool      `json:"isDefault" toml:"is_default" yaml:"is_default"`
	CreatedAt   time.Time `json:"createdAt" toml:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" toml:"updated_at" yaml:"updated_at"`
}

func (p *Personal) ProfileID() string      { return p.ID }
func (p *Personal) SetProfileID(id string) { p.ID = id }
func (p *Personal) SetName(name string)    { p.Name = name }
func (p *Personal) Default() bool          { return p.IsDefault }
func (p *Personal) MarkDefault(v bool)     { p.IsDefault = v }
func (p *Personal) Created() time.Time     { return p.CreatedAt }

func (p *Personal) Stamp(created, updated time.Time) {
	p.CreatedAt = created
	p.UpdatedAt = updated
}
