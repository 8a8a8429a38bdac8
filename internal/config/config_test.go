package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{"PORT", "DATABASE_PATH", "DATABASE_URL", "CORS_ALLOWED_ORIGINS", "AUTH_ENABLED", "TOKEN_TTL", "PASSWORD_HASHER", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./contactos.db", cfg.DatabasePath)
	assert.Equal(t, "./contactos.db", cfg.DSN())
	assert.Equal(t, []string{"http://127.0.0.1:5000"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, time.Minute, cfg.TokenTTL)
	assert.Equal(t, "sha256", cfg.PasswordHasher)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/contactos")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("TOKEN_TTL", "90s")
	t.Setenv("PASSWORD_HASHER", "BCRYPT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "postgres://u:p@localhost:5432/contactos", cfg.DSN())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, 90*time.Second, cfg.TokenTTL)
	assert.Equal(t, "bcrypt", cfg.PasswordHasher)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("PORT", "7000")

	content := "PORT=1234\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)

	// Real environment wins over .env.
	assert.Equal(t, 7000, cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"port":        {"PORT", "eighty"},
		"auth":        {"AUTH_ENABLED", "maybe"},
		"ttl":         {"TOKEN_TTL", "soon"},
		"ttlNegative": {"TOKEN_TTL", "-1m"},
		"hasher":      {"PASSWORD_HASHER", "md5"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), kv[0])
		})
	}
}
