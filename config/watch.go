package config

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch re-reads the config file whenever it changes and passes every valid
// result to onChange. Invalid edits are logged and ignored. It is a no-op
// when the configuration did not come from a file.
func (c *Config) Watch(logger *slog.Logger, onChange func(*Config)) {
	if c.source == nil || c.source.ConfigFileUsed() == "" {
		return
	}

	c.source.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed",
			slog.String("file", e.Name),
			slog.String("op", e.Op.String()))

		next, err := decode(c.source)
		if err != nil {
			logger.Warn("ignoring invalid config change", slog.Any("err", err))
			return
		}

		onChange(next)
	})
	c.source.WatchConfig()
}

// File returns the config file in use, or "" when running on defaults and
// environment variables only.
func (c *Config) File() string {
	if c.source == nil {
		return ""
	}
	return c.source.ConfigFileUsed()
}
