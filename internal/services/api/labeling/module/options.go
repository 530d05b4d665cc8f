package module

import (
	"time"

	"labelit/internal/adapters/corpus"
	"labelit/internal/platform/config"
)

// Options controls where the corpus comes from and how exports are written
type Options struct {
	BaseURL     string
	CacheDir    string
	SampleFile  string
	LabelFile   string
	HTTPTimeout time.Duration

	ExportDir     string
	ExportTimeout time.Duration
}

// FromConfig reads CORPUS_* and EXPORT_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORPUS_")
	e := cfg.Prefix("EXPORT_")
	return Options{
		BaseURL:       c.MayURL("BASE_URL", corpus.DefaultBaseURL),
		CacheDir:      c.MayString("CACHE_DIR", corpus.DefaultCacheDir),
		SampleFile:    c.MayString("SAMPLE_FILE", corpus.DefaultSampleFile),
		LabelFile:     c.MayString("LABEL_FILE", corpus.DefaultLabelFile),
		HTTPTimeout:   c.MayDuration("HTTP_TIMEOUT", 30*time.Second),
		ExportDir:     e.MayString("DIR", ""),
		ExportTimeout: e.MayDuration("TIMEOUT", 30*time.Second),
	}
}
