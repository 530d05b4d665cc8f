// Package corpus retrieves and parses the sample and label resources
//
// Both resources are plain text fetched from a fixed base url and cached on
// local disk under their own names. The sample file holds one record per
// line; lines inside a record are separated by a literal backslash n. The
// label file holds one label per line.
package corpus

import (
	"context"
	"errors"
	"io"
	"os"

	"labelit/internal/core/annotate"
	perr "labelit/internal/platform/errors"
	"labelit/internal/platform/logger"
)

const (
	// DefaultSampleFile is the sample resource name
	DefaultSampleFile = "sample_file.txt"
	// DefaultLabelFile is the label resource name
	DefaultLabelFile = "label_file.txt"
)

// Corpus is one loaded session input
type Corpus struct {
	Paragraphs []annotate.Paragraph
	Labels     annotate.LabelSet
}

// Loader fetches and parses the two resources
type Loader struct {
	f Fetcher
}

// NewLoader wraps a fetcher
func NewLoader(f Fetcher) *Loader {
	if f == nil {
		panic("corpus.Loader requires a non nil Fetcher")
	}
	return &Loader{f: f}
}

// Load fetches both resources then parses them
// fetch failures are ErrorCodeUnavailable, parse failures ErrorCodeInvalidArgument
func (l *Loader) Load(ctx context.Context, sample, label string) (Corpus, error) {
	sp, err := l.f.Fetch(ctx, sample)
	if err != nil {
		return Corpus{}, err
	}
	lp, err := l.f.Fetch(ctx, label)
	if err != nil {
		return Corpus{}, err
	}

	paras, err := parseFile(sp, ParseSamples)
	if err != nil {
		return Corpus{}, perr.WithOp(err, "corpus.samples")
	}
	labels, err := parseFile(lp, ParseLabels)
	if err != nil {
		return Corpus{}, perr.WithOp(err, "corpus.labels")
	}

	logger.C(ctx).Info().
		Int("paragraphs", len(paras)).
		Int("labels", len(labels)).
		Msg("corpus loaded")
	return Corpus{Paragraphs: paras, Labels: labels}, nil
}

// Cleanup removes both cached files and joins both removal errors
func (l *Loader) Cleanup(sample, label string) error {
	var errs []error
	for _, name := range []string{sample, label} {
		if err := os.Remove(l.f.Path(name)); err != nil {
			errs = append(errs, perr.Wrapf(err, perr.ErrorCodeIO, "corpus: remove %s", name))
		}
	}
	return errors.Join(errs...)
}

func parseFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, perr.Wrapf(err, perr.ErrorCodeIO, "corpus: open %s", path)
	}
	defer func() { _ = f.Close() }()
	return parse(f)
}
