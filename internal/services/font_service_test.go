package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storyloom/internal/events"
	"storyloom/internal/models"
	"storyloom/internal/services"
	"storyloom/internal/tests/mocks"
)

func TestFontService_LoadFontIsIdempotent(t *testing.T) {
	log := captureEvents(t)
	svc := services.NewFontService(&mocks.FontSettingsRepositoryMock{}, "", zap.NewNop())

	assert.True(t, svc.LoadFont("Lora"))
	assert.False(t, svc.LoadFont("Lora"))
	assert.False(t, svc.LoadFont(`"Lora"`))
	assert.False(t, svc.LoadFont("serif"))
	assert.False(t, svc.LoadFont("  "))

	loads := log.named(events.FontLoad)
	require.Len(t, loads, 1)
	assert.Equal(t, events.FontLoadEvent{
		Family: "Lora",
		Href:   "https://fonts.googleapis.com/css2?family=Lora:ital,wght@0,400;0,700;1,400;1,700&display=swap",
	}, loads[0])
	assert.Equal(t, []string{"Lora"}, svc.LoadedFonts())
}

func TestFontService_StartupDoesNotLoadFonts(t *testing.T) {
	log := captureEvents(t)
	svc := services.NewFontService(&mocks.FontSettingsRepositoryMock{}, "https://fonts.example.test/css2", nil)

	require.NoError(t, svc.Startup(context.Background()))

	assert.Empty(t, svc.LoadedFonts())
	assert.Empty(t, log.named(events.FontLoad))
}

func TestFontService_LoadConfigured(t *testing.T) {
	log := captureEvents(t)
	svc := services.NewFontService(&mocks.FontSettingsRepositoryMock{}, "https://fonts.example.test/css2", nil)
	require.NoError(t, svc.Startup(context.Background()))

	require.NoError(t, svc.LoadConfigured())

	assert.Equal(t, []string{"Noto Sans", "Noto Serif", "JetBrains Mono"}, svc.LoadedFonts())
	assert.Len(t, log.named(events.FontLoad), 3)
}

func TestFontService_LoadFontWithoutListenerRecordsNothing(t *testing.T) {
	events.SetCustomEmitter(nil)
	svc := services.NewFontService(&mocks.FontSettingsRepositoryMock{}, "", nil)

	assert.False(t, svc.LoadFont("Lora"))
	assert.Empty(t, svc.LoadedFonts())
}

func TestFontService_FontsRequestedOnceFrontendListens(t *testing.T) {
	events.SetCustomEmitter(nil)
	svc := services.NewFontService(&mocks.FontSettingsRepositoryMock{}, "", nil)
	require.NoError(t, svc.Startup(context.Background()))
	_, err := svc.UpdateFontSlot("code", "Fira Code", 14)
	require.NoError(t, err)

	log := captureEvents(t)
	_, err = svc.ResetFontSettings()
	require.NoError(t, err)
	_, err = svc.UpdateFontSlot("normal", "Noto Sans", 18)
	require.NoError(t, err)

	var families []string
	for _, e := range log.named(events.FontLoad) {
		families = append(families, e.(events.FontLoadEvent).Family)
	}
	assert.Equal(t, []string{"Noto Sans", "Noto Serif", "JetBrains Mono"}, families)
}

func TestFontService_EnsureFonts(t *testing.T) {
	captureEvents(t)
	svc := services.NewFontService(&mocks.FontSettingsRepositoryMock{}, "", nil)
	require.True(t, svc.LoadFont("Lora"))

	fonts, err := svc.EnsureFonts()
	require.NoError(t, err)

	require.Len(t, fonts, 4)
	assert.Equal(t, events.FontLoadEvent{Family: "Lora", Href: services.GoogleFontsHref(services.DefaultFontCSSBase, "Lora")}, fonts[0])
	assert.Equal(t, "JetBrains Mono", fonts[3].Family)

	again, err := svc.EnsureFonts()
	require.NoError(t, err)
	assert.Equal(t, fonts, again)
}

func TestFontService_StartupRepositoryError(t *testing.T) {
	repo := &mocks.FontSettingsRepositoryMock{
		GetFunc: func(ctx context.Context) (*models.FontSettings, error) { return nil, errors.New("db down") },
	}
	svc := services.NewFontService(repo, "", nil)

	err := svc.Startup(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestFontService_UpdateFontSlot(t *testing.T) {
	captureEvents(t)
	repo := &mocks.FontSettingsRepositoryMock{}
	svc := services.NewFontService(repo, "", nil)

	updated, err := svc.UpdateFontSlot("Dialogue", "Lora", 18)
	require.NoError(t, err)
	assert.Equal(t, "Lora", updated.DialogueFamily)
	assert.Equal(t, 18, updated.DialogueSize)
	assert.Equal(t, "Noto Sans", updated.NormalFamily)
	require.NotNil(t, repo.Stored)
	assert.Equal(t, "Lora", repo.Stored.DialogueFamily)
	assert.Contains(t, svc.LoadedFonts(), "Lora")
}

func TestFontService_UpdateFontSlot_ClampsSize(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{in: 100, want: services.MaxFontSize},
		{in: 3, want: services.MinFontSize},
		{in: 0, want: 16},
		{in: -4, want: 16},
		{in: 20, want: 20},
	}
	for _, tc := range cases {
		svc := services.NewFontService(&mocks.FontSettingsRepositoryMock{}, "", nil)
		updated, err := svc.UpdateFontSlot("code", "Fira Code", tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, updated.CodeSize, "size %d", tc.in)
	}
}

func TestFontService_UpdateFontSlot_Validation(t *testing.T) {
	repo := &mocks.FontSettingsRepositoryMock{}
	svc := services.NewFontService(repo, "", nil)

	_, err := svc.UpdateFontSlot("heading", "Lora", 16)
	assert.ErrorIs(t, err, services.ErrInvalidFontSlot)

	_, err = svc.UpdateFontSlot("normal", "  ", 16)
	assert.ErrorIs(t, err, services.ErrFamilyRequired)

	assert.Nil(t, repo.Stored)
}

func TestFontService_ResetFontSettings(t *testing.T) {
	repo := &mocks.FontSettingsRepositoryMock{}
	svc := services.NewFontService(repo, "", nil)
	_, err := svc.UpdateFontSlot("normal", "Lora", 20)
	require.NoError(t, err)

	reset, err := svc.ResetFontSettings()
	require.NoError(t, err)
	assert.Equal(t, "Noto Sans", reset.NormalFamily)
	assert.Equal(t, 16, repo.Stored.NormalSize)
}

func TestFontService_CSSText(t *testing.T) {
	svc := services.NewFontService(&mocks.FontSettingsRepositoryMock{}, "", nil)

	css, err := svc.CSSText()
	require.NoError(t, err)

	want := ":root {\n" +
		"  --font-normal-family: \"Noto Sans\", sans-serif;\n" +
		"  --font-normal-size: 16px;\n" +
		"  --font-dialogue-family: \"Noto Serif\", serif;\n" +
		"  --font-dialogue-size: 16px;\n" +
		"  --font-italic-family: \"Noto Serif\", serif;\n" +
		"  --font-italic-size: 16px;\n" +
		"  --font-code-family: \"JetBrains Mono\", monospace;\n" +
		"  --font-code-size: 14px;\n" +
		"}\n"
	assert.Equal(t, want, css)
}

func TestFontCSSVariables_GenericFamilyUsesFallbackOnly(t *testing.T) {
	settings := models.DefaultFontSettings()
	settings.CodeFamily = "monospace"

	vars := services.FontCSSVariables(settings)
	assert.Equal(t, "monospace", vars["--font-code-family"])
	assert.Len(t, vars, 8)
}

func TestGoogleFontsHref_EscapesFamily(t *testing.T) {
	href := services.GoogleFontsHref(services.DefaultFontCSSBase, "Noto Sans")
	assert.Equal(t, "https://fonts.googleapis.com/css2?family=Noto+Sans:ital,wght@0,400;0,700;1,400;1,700&display=swap", href)
}
