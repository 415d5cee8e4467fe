package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"storyloom/internal/events"
	"storyloom/internal/models"
	"storyloom/internal/repositories"
)

const (
	DefaultFontCSSBase = "https://fonts.googleapis.com/css2"
	MinFontSize        = 8
	MaxFontSize        = 72
)

// genericFamilies are resolved by the browser and never fetched.
var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-serif": true, "ui-sans-serif": true,
	"ui-monospace": true, "inherit": true,
}

var slotFallback = map[models.FontSlot]string{
	models.FontSlotNormal:   "sans-serif",
	models.FontSlotDialogue: "serif",
	models.FontSlotItalic:   "serif",
	models.FontSlotCode:     "monospace",
}

type FontService interface {
	Startup(ctx context.Context) error
	GetFontSettings() (*models.FontSettings, error)
	UpdateFontSlot(slot string, family string, size int) (*models.FontSettings, error)
	ResetFontSettings() (*models.FontSettings, error)
	LoadFont(family string) bool
	LoadConfigured() error
	EnsureFonts() ([]events.FontLoadEvent, error)
	LoadedFonts() []string
	CSSVariables() (map[string]string, error)
	CSSText() (string, error)
}

type fontService struct {
	repo    repositories.FontSettingsRepository
	cssBase string
	log     *zap.Logger
	ctx     context.Context

	mu     sync.Mutex
	loaded map[string]bool
	order  []string
}

func NewFontService(repo repositories.FontSettingsRepository, cssBase string, log *zap.Logger) FontService {
	if strings.TrimSpace(cssBase) == "" {
		cssBase = DefaultFontCSSBase
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &fontService{
		repo:    repo,
		cssBase: cssBase,
		log:     log.Named("fonts"),
		loaded:  make(map[string]bool),
	}
}

// Startup keeps ctx and checks that the settings can be read. Stylesheets
// are requested later, once the frontend listens (LoadConfigured).
func (s *fontService) Startup(ctx context.Context) error {
	s.ctx = ctx
	if _, err := s.repo.Get(s.context()); err != nil {
		return fmt.Errorf("load font settings: %w", err)
	}
	return nil
}

// LoadConfigured requests the stylesheet of every configured family.
func (s *fontService) LoadConfigured() error {
	settings, err := s.repo.Get(s.context())
	if err != nil {
		return fmt.Errorf("load font settings: %w", err)
	}
	for _, slot := range models.FontSlots {
		face, _ := settings.Face(slot)
		s.LoadFont(face.Family)
	}
	return nil
}

// EnsureFonts loads the configured families and returns every family
// requested so far with its href, so a freshly mounted frontend can inject
// links for events it missed.
func (s *fontService) EnsureFonts() ([]events.FontLoadEvent, error) {
	if err := s.LoadConfigured(); err != nil {
		return nil, err
	}
	loaded := s.LoadedFonts()
	out := make([]events.FontLoadEvent, 0, len(loaded))
	for _, family := range loaded {
		out = append(out, events.FontLoadEvent{Family: family, Href: GoogleFontsHref(s.cssBase, family)})
	}
	return out, nil
}

func (s *fontService) context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *fontService) GetFontSettings() (*models.FontSettings, error) {
	return s.repo.Get(s.context())
}

func (s *fontService) UpdateFontSlot(slot string, family string, size int) (*models.FontSettings, error) {
	fontSlot := models.FontSlot(strings.ToLower(strings.TrimSpace(slot)))
	family = cleanFamily(family)
	if family == "" {
		return nil, ErrFamilyRequired
	}

	current, err := s.repo.Get(s.context())
	if err != nil {
		return nil, err
	}
	if !current.SetFace(fontSlot, models.FontFace{Family: family, Size: clampFontSize(size)}) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFontSlot, slot)
	}
	current.UpdatedAt = time.Now()

	if err := s.repo.Update(s.context(), current); err != nil {
		return nil, err
	}
	s.LoadFont(family)
	return current, nil
}

func (s *fontService) ResetFontSettings() (*models.FontSettings, error) {
	defaults := models.DefaultFontSettings()
	defaults.UpdatedAt = time.Now()
	if err := s.repo.Update(s.context(), defaults); err != nil {
		return nil, err
	}
	for _, slot := range models.FontSlots {
		face, _ := defaults.Face(slot)
		s.LoadFont(face.Family)
	}
	return defaults, nil
}

// LoadFont asks the frontend to inject the stylesheet for family. It
// reports whether a request was emitted; each family is requested once.
// Nothing is recorded while no frontend listens.
func (s *fontService) LoadFont(family string) bool {
	family = cleanFamily(family)
	if family == "" || genericFamilies[strings.ToLower(family)] || !events.Live() {
		return false
	}

	s.mu.Lock()
	if s.loaded[family] {
		s.mu.Unlock()
		return false
	}
	s.loaded[family] = true
	s.order = append(s.order, family)
	s.mu.Unlock()

	href := GoogleFontsHref(s.cssBase, family)
	s.log.Debug("loading font", zap.String("family", family), zap.String("href", href))
	events.Emit(s.context(), events.FontLoad, events.FontLoadEvent{Family: family, Href: href})
	return true
}

func (s *fontService) LoadedFonts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

func (s *fontService) CSSVariables() (map[string]string, error) {
	settings, err := s.repo.Get(s.context())
	if err != nil {
		return nil, err
	}
	return FontCSSVariables(settings), nil
}

func (s *fontService) CSSText() (string, error) {
	settings, err := s.repo.Get(s.context())
	if err != nil {
		return "", err
	}
	return FontCSSText(settings), nil
}

// GoogleFontsHref builds the css2 stylesheet URL for family.
func GoogleFontsHref(base, family string) string {
	return fmt.Sprintf("%s?family=%s:ital,wght@0,400;0,700;1,400;1,700&display=swap",
		base, url.QueryEscape(cleanFamily(family)))
}

// FontCSSVariables returns the custom properties consumed by the message renderer.
func FontCSSVariables(settings *models.FontSettings) map[string]string {
	vars := make(map[string]string, len(models.FontSlots)*2)
	for _, slot := range models.FontSlots {
		face, _ := settings.Face(slot)
		vars[fmt.Sprintf("--font-%s-family", slot)] = familyStack(face.Family, slotFallback[slot])
		vars[fmt.Sprintf("--font-%s-size", slot)] = fmt.Sprintf("%dpx", clampFontSize(face.Size))
	}
	return vars
}

// FontCSSText serializes the custom properties as a :root rule in slot order.
func FontCSSText(settings *models.FontSettings) string {
	vars := FontCSSVariables(settings)
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, slot := range models.FontSlots {
		for _, prop := range []string{"family", "size"} {
			name := fmt.Sprintf("--font-%s-%s", slot, prop)
			fmt.Fprintf(&b, "  %s: %s;\n", name, vars[name])
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func familyStack(family, fallback string) string {
	family = cleanFamily(family)
	if family == "" || genericFamilies[strings.ToLower(family)] {
		return fallback
	}
	return fmt.Sprintf("%q, %s", family, fallback)
}

func cleanFamily(family string) string {
	return strings.Trim(strings.TrimSpace(family), `"'`)
}

func clampFontSize(size int) int {
	switch {
	case size <= 0:
		return 16
	case size < MinFontSize:
		return MinFontSize
	case size > MaxFontSize:
		return MaxFontSize
	}
	return size
}
