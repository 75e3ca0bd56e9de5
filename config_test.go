package gotable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var configEnvKeys = []string{
	"GOTABLE_PAGE_SIZE",
	"GOTABLE_WINDOW_RADIUS",
	"GOTABLE_LOCALE",
	"GOTABLE_LOG_LEVEL",
}

// unsetConfigEnv clears the config variables for the test and restores them
// afterwards, including the ones a dotenv file sets.
func unsetConfigEnv(t *testing.T) {
	t.Helper()

	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func Test_LoadConfig_Defaults(t *testing.T) {
	unsetConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func Test_LoadConfig_Environment(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("GOTABLE_PAGE_SIZE", "10")
	t.Setenv("GOTABLE_WINDOW_RADIUS", "1")
	t.Setenv("GOTABLE_LOCALE", "de")
	t.Setenv("GOTABLE_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, Config{PageSize: 10, WindowRadius: 1, Locale: "de", LogLevel: "debug"}, cfg)
	require.Equal(t, language.German, cfg.Tag())
}

func Test_LoadConfig_EnvFile(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("GOTABLE_LOCALE", "de")

	path := writeEnvFile(t, "GOTABLE_PAGE_SIZE=40\nGOTABLE_LOCALE=sv\n")

	cfg, err := LoadConfig(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, 40, cfg.PageSize)
	require.Equal(t, "de", cfg.Locale, "environment wins over env files")
}

func Test_LoadEnv(t *testing.T) {
	unsetConfigEnv(t)

	n, err := LoadEnv([]string{"does-not-exist.env"})
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = LoadEnv([]string{writeEnvFile(t, "GOTABLE_WINDOW_RADIUS=3\n")})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "3", os.Getenv("GOTABLE_WINDOW_RADIUS"))

	_, err = LoadEnv([]string{writeEnvFile(t, "BAD-KEY=1\n")})
	assert.Error(t, err)
}

func Test_LoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"GOTABLE_PAGE_SIZE", "0"},
		{"GOTABLE_PAGE_SIZE", "501"},
		{"GOTABLE_PAGE_SIZE", "many"},
		{"GOTABLE_WINDOW_RADIUS", "-1"},
		{"GOTABLE_LOCALE", "not a locale"},
		{"GOTABLE_LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			unsetConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func Test_Config_Tag(t *testing.T) {
	require.Equal(t, language.English, DefaultConfig().Tag())
	require.Equal(t, language.English, Config{Locale: "???"}.Tag())
	require.Equal(t, language.Swedish, Config{Locale: "sv"}.Tag())
}

func Test_Config_Logger(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, Config{LogLevel: "debug"}.Logger().GetLevel())
	require.Equal(t, logrus.InfoLevel, Config{LogLevel: "nope"}.Logger().GetLevel())
}
