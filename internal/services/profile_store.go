package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storyloom/internal/models"
	"storyloom/internal/repositories"
)

type profilePtr[T any] interface {
	*T
	models.Profile
}

// profileStore keeps one profile collection and its settings record in a
// DataRepository. Whenever the collection is non-empty exactly one entry
// is flagged default, and the settings default id follows it.
type profileStore[T any, P profilePtr[T]] struct {
	data        repositories.DataRepository
	listKey     string
	settingsKey string
	log         *zap.Logger
	now         func() time.Time
	newID       func() string

	// Every mutation is a read-modify-write of the whole collection.
	mu sync.Mutex
}

func newProfileStore[T any, P profilePtr[T]](data repositories.DataRepository, listKey, settingsKey string, log *zap.Logger) *profileStore[T, P] {
	if log == nil {
		log = zap.NewNop()
	}
	return &profileStore[T, P]{
		data:        data,
		listKey:     listKey,
		settingsKey: settingsKey,
		log:         log.With(zap.String("collection", listKey)),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (s *profileStore[T, P]) all(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readItems(ctx)
}

func (s *profileStore[T, P]) get(ctx context.Context, id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}
	if idx := indexOf[T, P](items, id); idx >= 0 {
		return &items[idx], nil
	}
	return nil, nil
}

func (s *profileStore[T, P]) getDefault(ctx context.Context) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}
	return defaultOf[T, P](items), nil
}

func (s *profileStore[T, P]) settings(ctx context.Context) (*models.ProfileSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readSettings(ctx)
}

// save upserts item by id. A missing id is generated.
func (s *profileStore[T, P]) save(ctx context.Context, item T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}

	p := P(&item)
	if strings.TrimSpace(p.ProfileID()) == "" {
		p.SetProfileID(s.newID())
	}

	now := s.now()
	created := p.Created()
	idx := indexOf[T, P](items, p.ProfileID())
	if created.IsZero() && idx >= 0 {
		created = P(&items[idx]).Created()
	}
	if created.IsZero() {
		created = now
	}
	p.Stamp(created, now)

	if idx >= 0 {
		items[idx] = item
	} else {
		items = append(items, item)
		idx = len(items) - 1
	}

	if p.Default() {
		for i := range items {
			P(&items[i]).MarkDefault(i == idx)
		}
	}
	defaultID := s.electDefault(items)

	if err := s.writeItems(ctx, items); err != nil {
		return nil, err
	}
	if err := s.syncSettings(ctx, defaultID, ""); err != nil {
		return nil, err
	}
	saved := items[idx]
	return &saved, nil
}

// remove deletes id and prunes every settings reference to it.
func (s *profileStore[T, P]) remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readItems(ctx)
	if err != nil {
		return err
	}
	idx := indexOf[T, P](items, id)
	if idx < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrProfileNotFound)
	}

	wasDefault := P(&items[idx]).Default()
	items = append(items[:idx], items[idx+1:]...)
	if wasDefault && len(items) > 0 {
		P(&items[0]).MarkDefault(true)
		s.log.Debug("promoted new default", zap.String("id", P(&items[0]).ProfileID()))
	}
	defaultID := s.electDefault(items)

	if err := s.writeItems(ctx, items); err != nil {
		return err
	}
	return s.syncSettings(ctx, defaultID, id)
}

func (s *profileStore[T, P]) setDefault(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readItems(ctx)
	if err != nil {
		return err
	}
	idx := indexOf[T, P](items, id)
	if idx < 0 {
		return fmt.Errorf("set default %s: %w", id, ErrProfileNotFound)
	}
	for i := range items {
		P(&items[i]).MarkDefault(i == idx)
	}

	if err := s.writeItems(ctx, items); err != nil {
		return err
	}
	return s.syncSettings(ctx, id, "")
}

func (s *profileStore[T, P]) createNew(ctx context.Context, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	var item T
	p := P(&item)
	p.SetProfileID(s.newID())
	p.SetName(name)
	return s.save(ctx, item)
}

// forCharacter returns the profile mapped to characterID, falling back to
// the default when there is no mapping or the mapped profile is gone.
func (s *profileStore[T, P]) forCharacter(ctx context.Context, characterID string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readItems(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.readSettings(ctx)
	if err != nil {
		return nil, err
	}
	if mapped, ok := settings.CharacterMap[characterID]; ok {
		if idx := indexOf[T, P](items, mapped); idx >= 0 {
			return &items[idx], nil
		}
	}
	return defaultOf[T, P](items), nil
}

// setForCharacter maps characterID to id; an empty id removes the mapping.
func (s *profileStore[T, P]) setForCharacter(ctx context.Context, characterID, id string) error {
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return ErrCharacterRequired
	}
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		items, err := s.readItems(ctx)
		if err != nil {
			return err
		}
		if indexOf[T, P](items, id) < 0 {
			return fmt.Errorf("map %s to %s: %w", characterID, id, ErrProfileNotFound)
		}
	}

	settings, err := s.readSettings(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		delete(settings.CharacterMap, characterID)
	} else {
		settings.CharacterMap[characterID] = id
	}
	return s.writeSettings(ctx, settings)
}

// electDefault enforces the single-default invariant in place and returns
// the default id ("" for an empty collection).
func (s *profileStore[T, P]) electDefault(items []T) string {
	defaultID := ""
	for i := range items {
		p := P(&items[i])
		if !p.Default() {
			continue
		}
		if defaultID == "" {
			defaultID = p.ProfileID()
			continue
		}
		p.MarkDefault(false)
	}
	if defaultID == "" && len(items) > 0 {
		first := P(&items[0])
		first.MarkDefault(true)
		defaultID = first.ProfileID()
	}
	return defaultID
}

// syncSettings points the settings default at defaultID and, when removed
// is set, drops character mappings to it.
func (s *profileStore[T, P]) syncSettings(ctx context.Context, defaultID, removed string) error {
	settings, err := s.readSettings(ctx)
	if err != nil {
		return err
	}
	changed := false
	if removed != "" {
		changed = settings.Prune(removed, defaultID)
	}
	if settings.DefaultID != defaultID {
		settings.DefaultID = defaultID
		changed = true
	}
	if !changed {
		return nil
	}
	return s.writeSettings(ctx, settings)
}

func (s *profileStore[T, P]) readItems(ctx context.Context) ([]T, error) {
	items, err := repositories.ReadCollection[T](ctx, s.data, s.listKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.listKey, err)
	}
	return items, nil
}

func (s *profileStore[T, P]) writeItems(ctx context.Context, items []T) error {
	if err := repositories.WriteCollection(ctx, s.data, s.listKey, items); err != nil {
		return fmt.Errorf("write %s: %w", s.listKey, err)
	}
	return nil
}

func (s *profileStore[T, P]) readSettings(ctx context.Context) (*models.ProfileSettings, error) {
	list, err := repositories.ReadCollection[models.ProfileSettings](ctx, s.data, s.settingsKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.settingsKey, err)
	}
	settings := models.ProfileSettings{}
	if len(list) > 0 {
		settings = list[0]
	}
	if settings.CharacterMap == nil {
		settings.CharacterMap = map[string]string{}
	}
	return &settings, nil
}

func (s *profileStore[T, P]) writeSettings(ctx context.Context, settings *models.ProfileSettings) error {
	if err := repositories.WriteCollection(ctx, s.data, s.settingsKey, []models.ProfileSettings{*settings}); err != nil {
		return fmt.Errorf("write %s: %w", s.settingsKey, err)
	}
	return nil
}

func indexOf[T any, P profilePtr[T]](items []T, id string) int {
	if id == "" {
		return -1
	}
	for i := range items {
		if P(&items[i]).ProfileID() == id {
			return i
		}
	}
	return -1
}

func defaultOf[T any, P profilePtr[T]](items []T) *T {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if P(&items[i]).Default() {
			return &items[i]
		}
	}
	return &items[0]
}
