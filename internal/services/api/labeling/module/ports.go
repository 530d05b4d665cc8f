package module

import (
	"context"

	"labelit/internal/core/annotate"
	"labelit/internal/services/api/labeling/domain"
	labelsvc "labelit/internal/services/api/labeling/service"
)

// Ports declares what the labeling module accepts from the caller
// a nil Corpus means the module fetches the corpus itself from Options
type Ports struct {
	Corpus domain.CorpusPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptLabelingPort exposes service methods as module ports for cross-module usage
type adaptLabelingPort struct{ svc labelsvc.Service }

func (a adaptLabelingPort) SessionID() string { return a.svc.SessionID() }

func (a adaptLabelingPort) Session(ctx context.Context) (domain.SessionView, error) {
	return a.svc.Session(ctx)
}

func (a adaptLabelingPort) Submit(ctx context.Context, in domain.SubmitInput) (domain.SessionView, error) {
	return a.svc.Submit(ctx, in)
}

func (a adaptLabelingPort) Done(ctx context.Context) (domain.SessionView, error) {
	return a.svc.Done(ctx)
}

func (a adaptLabelingPort) Annotations(ctx context.Context) ([]annotate.Annotation, error) {
	return a.svc.Annotations(ctx)
}

func (a adaptLabelingPort) Artifact(ctx context.Context, name string) (domain.Artifact, error) {
	return a.svc.Artifact(ctx, name)
}
