package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/config"
	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "@every 1h", cfg.Notifier.Schedule)
	assert.False(t, cfg.Pipeline.ForwardOnly)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
pipeline:
  forward-only: true
storage:
  driver: memory
notifier:
  schedule: "0 * * * *"
`), 0o600))

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HIREMATCH_SERVER_PORT", "9090")

	cfg, err := config.Load(viper.New(), file)
	require.NoError(t, err)

	assert.True(t, cfg.Pipeline.ForwardOnly)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "0 * * * *", cfg.Notifier.Schedule)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	// s3 is the default driver and needs a bucket
	err = cfg.Validate()
	assert.True(t, errx.IsType(err, errx.TypeValidation))

	cfg.Storage.Driver = "memory"
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateServer())

	cfg.Auth.JWTSecret = "s"
	assert.NoError(t, cfg.ValidateServer())
}

// chdir mirrors testing.T.Chdir (Go 1.24+): change the working directory
// for the duration of the test and restore it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
