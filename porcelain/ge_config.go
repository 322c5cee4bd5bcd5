package porcelain

import (
	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"go.uber.org/zap"
)

// GetConfig reads a "section.name" key from .git/config.
func (r *Repository) GetConfig(key string) (string, bool) {
	if !r.IsInitialized() {
		return "", false
	}
	val, err := plumbing.GetConfig(r.fs, key)
	if err != nil {
		r.log.Debug("config lookup failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return val, true
}

// SetConfig writes a "section.name" key into .git/config.
func (r *Repository) SetConfig(key, value string) bool {
	if !r.IsInitialized() {
		return false
	}
	if err := plumbing.SetConfig(r.fs, key, value); err != nil {
		r.log.Debug("config write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// ListConfig returns every "section.name=value" line of .git/config.
func (r *Repository) ListConfig() []string {
	if !r.IsInitialized() {
		return []string{}
	}
	entries, err := plumbing.ListConfig(r.fs)
	if err != nil {
		return []string{}
	}
	return entries
}
