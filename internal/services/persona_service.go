package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storyloom/internal/events"
	"storyloom/internal/models"
	"storyloom/internal/repositories"
)

const KindPersona = "persona"

type PersonaService interface {
	Startup(ctx context.Context)
	GetPersonas() ([]models.Persona, error)
	GetPersona(id string) (*models.Persona, error)
	GetDefaultPersona() (*models.Persona, error)
	SavePersona(persona models.Persona) (*models.Persona, error)
	DeletePersona(id string) error
	SetDefaultPersona(id string) error
	CreatePersona(name string) (*models.Persona, error)
	GetPersonaForCharacter(characterID string) (*models.Persona, error)
	SetPersonaForCharacter(characterID, personaID string) error
	GetPersonaSettings() (*models.ProfileSettings, error)
}

type personaService struct {
	store *profileStore[models.Persona, *models.Persona]
	ctx   context.Context
}

func NewPersonaService(data repositories.DataRepository, log *zap.Logger) PersonaService {
	return &personaService{
		store: newProfileStore[models.Persona, *models.Persona](data, repositories.KeyPersona, repositories.KeyPersonaSettings, log),
	}
}

func (s *personaService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *personaService) context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *personaService) changed() {
	events.Emit(s.context(), events.ProfilesChanged, events.ProfilesChangedEvent{Kind: KindPersona})
}

func (s *personaService) GetPersonas() ([]models.Persona, error) {
	list, err := s.store.all(s.context())
	if err != nil {
		return nil, fmt.Errorf("service: list personas: %w", err)
	}
	return list, nil
}

func (s *personaService) GetPersona(id string) (*models.Persona, error) {
	p, err := s.store.get(s.context(), id)
	if err != nil {
		return nil, fmt.Errorf("service: get persona %s: %w", id, err)
	}
	return p, nil
}

func (s *personaService) GetDefaultPersona() (*models.Persona, error) {
	p, err := s.store.getDefault(s.context())
	if err != nil {
		return nil, fmt.Errorf("service: default persona: %w", err)
	}
	return p, nil
}

func (s *personaService) SavePersona(persona models.Persona) (*models.Persona, error) {
	saved, err := s.store.save(s.context(), persona)
	if err != nil {
		return nil, fmt.Errorf("service: save persona: %w", err)
	}
	s.changed()
	return saved, nil
}

func (s *personaService) DeletePersona(id string) error {
	if err := s.store.remove(s.context(), id); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	s.changed()
	return nil
}

func (s *personaService) SetDefaultPersona(id string) error {
	if err := s.store.setDefault(s.context(), id); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	s.changed()
	return nil
}

func (s *personaService) CreatePersona(name string) (*models.Persona, error) {
	p, err := s.store.createNew(s.context(), name)
	if err != nil {
		return nil, fmt.Errorf("service: create persona: %w", err)
	}
	s.changed()
	return p, nil
}

func (s *personaService) GetPersonaForCharacter(characterID string) (*models.Persona, error) {
	p, err := s.store.forCharacter(s.context(), characterID)
	if err != nil {
		return nil, fmt.Errorf("service: persona for character %s: %w", characterID, err)
	}
	return p, nil
}

// SetPersonaForCharacter overrides the persona used with characterID. An
// empty personaID removes the override.
func (s *personaService) SetPersonaForCharacter(characterID, personaID string) error {
	if err := s.store.setForCharacter(s.context(), characterID, personaID); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

func (s *personaService) GetPersonaSettings() (*models.ProfileSettings, error) {
	settings, err := s.store.settings(s.context())
	if err != nil {
		return nil, fmt.Errorf("service: persona settings: %w", err)
	}
	return settings, nil
}
