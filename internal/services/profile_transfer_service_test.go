package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyloom/internal/models"
	"storyloom/internal/services"
	"storyloom/internal/tests/mocks"
)

func newTransfer() (*services.ProfileTransferService, services.PersonaService, services.PersonalService) {
	repo := &mocks.DataRepositoryMock{}
	personas := services.NewPersonaService(repo, nil)
	personals := services.NewPersonalService(repo, nil)
	return services.NewProfileTransferService(personas, personals), personas, personals
}

func TestProfileTransfer_RoundTrip(t *testing.T) {
	for _, ext := range []string{"toml", "yaml", "yml"} {
		t.Run(ext, func(t *testing.T) {
			src, personas, _ := newTransfer()
			_, err := personas.SavePersona(models.Persona{ID: "a", Name: "Alice", Description: "first", Avatar: "a.png"})
			require.NoError(t, err)
			_, err = personas.SavePersona(models.Persona{ID: "b", Name: "Bob", IsDefault: true})
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "out", "personas."+ext)
			n, err := src.ExportPersonas(path)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			dst, imported, _ := newTransfer()
			n, err = dst.ImportPersonas(path)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			list, err := imported.GetPersonas()
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "Alice", list[0].Name)
			assert.Equal(t, "a.png", list[0].Avatar)
			assert.False(t, list[0].IsDefault)
			assert.Equal(t, "b", list[1].ID)
			assert.True(t, list[1].IsDefault)
		})
	}
}

func TestProfileTransfer_ImportDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(nested, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.toml"), []byte(`
[[profiles]]
id = "p1"
name = "From TOML"
personality = "calm"
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "two.yaml"), []byte(`
profiles:
  - name: From YAML
    personality: loud
    is_default: true
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	svc, _, personals := newTransfer()
	n, err := svc.ImportPersonals(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := personals.GetPersonals()
	require.NoError(t, err)
	require.Len(t, list, 2)

	def, err := personals.GetDefaultPersonal()
	require.NoError(t, err)
	assert.Equal(t, "From YAML", def.Name)
	assert.NotEmpty(t, def.ID)
}

func TestProfileTransfer_UnsupportedFormats(t *testing.T) {
	svc, _, _ := newTransfer()
	dir := t.TempDir()

	_, err := svc.ExportPersonas(filepath.Join(dir, "personas.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "personas.json")
	require.NoError(t, os.WriteFile(bad, []byte("[]"), 0644))
	_, err = svc.ImportPersonas(bad)
	assert.Error(t, err)

	_, err = svc.ImportPersonas(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
