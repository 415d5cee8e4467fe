package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"storyloom/internal/config"
)

func TestOpen_SQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DBPath:          filepath.Join(dir, "test.db"),
		Storage:         config.StorageSQLite,
		LogLevel:        "info",
		RecentChatLimit: 5,
	}

	store, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := store.Services
	require.NoError(t, svc.StartDbServices(context.Background()))

	p, err := svc.Personas.CreatePersona("Alice")
	require.NoError(t, err)
	got, err := svc.Personas.GetDefaultPersona()
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestOpen_BoltKeepsProfilesOutOfSQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DBPath:   filepath.Join(dir, "test.db"),
		Storage:  config.StorageBolt,
		BoltPath: filepath.Join(dir, "test.bolt"),
		LogLevel: "debug",
	}

	store, err := Open(cfg, nil)
	require.NoError(t, err)

	_, err = store.Services.Personals.CreatePersonal("Me")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	list, err := reopened.Services.Personals.GetPersonals()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Me", list[0].Name)

	cfg.Storage = config.StorageSQLite
	plain, err := Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = plain.Close() })
	list, err = plain.Services.Personals.GetPersonals()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, gormLevel("DEBUG"))
	assert.Equal(t, gormlogger.Error, gormLevel("error"))
	assert.Equal(t, gormlogger.Warn, gormLevel("info"))
}
