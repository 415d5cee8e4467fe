package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storyloom/internal/repositories"
)

// DbServices aggregates all domain services backed by the database.
type DbServices struct {
	Personas    PersonaService
	Personals   PersonalService
	Fonts       FontService
	RecentChats RecentChatService
	Transfers   *ProfileTransferService
	Dialogues   repositories.DialogueRepository
}

// Options tweaks NewDbServices. Zero values fall back to SQLite-backed
// data files and package defaults.
type Options struct {
	Data            repositories.DataRepository
	FontCSSBase     string
	RecentChatLimit int
	Logger          *zap.Logger
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB, opts Options) *DbServices {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	data := opts.Data
	if data == nil {
		data = repositories.NewDataFileRepository(db)
	}
	dialogues := repositories.NewDialogueRepository(db)

	personas := NewPersonaService(data, log)
	personals := NewPersonalService(data, log)

	return &DbServices{
		Personas:    personas,
		Personals:   personals,
		Fonts:       NewFontService(repositories.NewFontSettingsRepository(db), opts.FontCSSBase, log),
		RecentChats: NewRecentChatService(dialogues, opts.RecentChatLimit),
		Transfers:   NewProfileTransferService(personas, personals),
		Dialogues:   dialogues,
	}
}

// StartDbServices hands the wails context to every service.
func (s *DbServices) StartDbServices(ctx context.Context) error {
	s.Personas.Startup(ctx)
	s.Personals.Startup(ctx)
	s.RecentChats.Startup(ctx)
	return s.Fonts.Startup(ctx)
}
