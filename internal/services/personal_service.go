package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storyloom/internal/events"
	"storyloom/internal/models"
	"storyloom/internal/repositories"
)

const KindPersonal = "personal"

type PersonalService interface {
	Startup(ctx context.Context)
	GetPersonals() ([]models.Personal, error)
	GetPersonal(id string) (*models.Personal, error)
	GetDefaultPersonal() (*models.Personal, error)
	SavePersonal(personal models.Personal) (*models.Personal, error)
	DeletePersonal(id string) error
	SetDefaultPersonal(id string) error
	CreatePersonal(name string) (*models.Personal, error)
	GetPersonalForCharacter(characterID string) (*models.Personal, error)
	SetPersonalForCharacter(characterID, personalID string) error
	GetPersonalSettings() (*models.ProfileSettings, error)
}

type personalService struct {
	store *profileStore[models.Personal, *models.Personal]
	ctx   context.Context
}

func NewPersonalService(data repositories.DataRepository, log *zap.Logger) PersonalService {
	return &personalService{
		store: newProfileStore[models.Personal, *models.Personal](data, repositories.KeyPersonal, repositories.KeyPersonalSettings, log),
	}
}

func (s *personalService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *personalService) context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *personalService) changed() {
	events.Emit(s.context(), events.ProfilesChanged, events.ProfilesChangedEvent{Kind: KindPersonal})
}

func (s *personalService) GetPersonals() ([]models.Personal, error) {
	list, err := s.store.all(s.context())
	if err != nil {
		return nil, fmt.Errorf("service: list personals: %w", err)
	}
	return list, nil
}

func (s *personalService) GetPersonal(id string) (*models.Personal, error) {
	p, err := s.store.get(s.context(), id)
	if err != nil {
		return nil, fmt.Errorf("service: get personal %s: %w", id, err)
	}
	return p, nil
}

func (s *personalService) GetDefaultPersonal() (*models.Personal, error) {
	p, err := s.store.getDefault(s.context())
	if err != nil {
		return nil, fmt.Errorf("service: default personal: %w", err)
	}
	return p, nil
}

func (s *personalService) SavePersonal(personal models.Personal) (*models.Personal, error) {
	saved, err := s.store.save(s.context(), personal)
	if err != nil {
		return nil, fmt.Errorf("service: save personal: %w", err)
	}
	s.changed()
	return saved, nil
}

func (s *personalService) DeletePersonal(id string) error {
	if err := s.store.remove(s.context(), id); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	s.changed()
	return nil
}

func (s *personalService) SetDefaultPersonal(id string) error {
	if err := s.store.setDefault(s.context(), id); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	s.changed()
	return nil
}

func (s *personalService) CreatePersonal(name string) (*models.Personal, error) {
	p, err := s.store.createNew(s.context(), name)
	if err != nil {
		return nil, fmt.Errorf("service: create personal: %w", err)
	}
	s.changed()
	return p, nil
}

func (s *personalService) GetPersonalForCharacter(characterID string) (*models.Personal, error) {
	p, err := s.store.forCharacter(s.context(), characterID)
	if err != nil {
		return nil, fmt.Errorf("service: personal for character %s: %w", characterID, err)
	}
	return p, nil
}

func (s *personalService) SetPersonalForCharacter(characterID, personalID string) error {
	if err := s.store.setForCharacter(s.context(), characterID, personalID); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

func (s *personalService) GetPersonalSettings() (*models.ProfileSettings, error) {
	settings, err := s.store.settings(s.context())
	if err != nil {
		return nil, fmt.Errorf("service: personal settings: %w", err)
	}
	return settings, nil
}
