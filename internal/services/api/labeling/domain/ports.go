package domain

import (
	"context"

	"labelit/internal/adapters/corpus"
	"labelit/internal/core/annotate"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	SessionID() string
	Session(ctx context.Context) (SessionView, error)
	Submit(ctx context.Context, in SubmitInput) (SessionView, error)
	Done(ctx context.Context) (SessionView, error)
	Annotations(ctx context.Context) ([]annotate.Annotation, error)
	Artifact(ctx context.Context, name string) (Artifact, error)
}

// CorpusPort loads the session input and removes its cached files
type CorpusPort interface {
	Load(ctx context.Context, sample, label string) (corpus.Corpus, error)
	Cleanup(sample, label string) error
}
