package gotable

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Config holds listing settings shared by every table of an application.
type Config struct {
	PageSize     int    `env:"GOTABLE_PAGE_SIZE" envDefault:"25"`
	WindowRadius int    `env:"GOTABLE_WINDOW_RADIUS" envDefault:"2"`
	Locale       string `env:"GOTABLE_LOCALE" envDefault:"en"`
	LogLevel     string `env:"GOTABLE_LOG_LEVEL" envDefault:"info"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		PageSize:     DefaultPageSize,
		WindowRadius: WindowRadius,
		Locale:       language.English.String(),
		LogLevel:     logrus.InfoLevel.String(),
	}
}

// LoadEnv loads the dotenv files that exist. Returns the number of files loaded.
func LoadEnv(envFiles []string) (int, error) {
	existing := lo.Filter(envFiles, func(file string, _ int) bool {
		_, err := os.Stat(file)
		return err == nil
	})
	if len(existing) == 0 {
		return 0, nil
	}

	return len(existing), godotenv.Load(existing...)
}

// LoadConfig reads Config from the environment after loading envFiles.
// Variables already present in the environment win over dotenv files.
func LoadConfig(envFiles ...string) (Config, error) {
	if _, err := LoadEnv(envFiles); err != nil {
		return Config{}, fmt.Errorf("cannot load env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if !ValidPageSize(c.PageSize) {
		return fmt.Errorf("page size must be within [1, %d], got %d", MaxPageSize, c.PageSize)
	}
	if c.WindowRadius < 0 {
		return fmt.Errorf("window radius must be non-negative, got %d", c.WindowRadius)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale '%s': %w", c.Locale, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Tag returns the locale used for string ordering. Falls back to English.
func (c Config) Tag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}

	return tag
}

// Logger returns a text logger writing to stderr at the configured level.
func (c Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
