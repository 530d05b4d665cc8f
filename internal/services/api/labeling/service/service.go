// Package service contains the labeling session workflow
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"labelit/internal/adapters/corpus"
	"labelit/internal/core/annotate"
	"labelit/internal/core/session"
	"labelit/internal/modkit/repokit"
	perr "labelit/internal/platform/errors"
	"labelit/internal/platform/logger"
	ptime "labelit/internal/platform/time"
	"labelit/internal/services/api/labeling/domain"
	"labelit/internal/services/api/labeling/repo"

	"github.com/google/uuid"
)

// Service defines the labeling service contract
type Service interface {
	domain.ServicePort
}

// Options configure one labeling session
type Options struct {
	SampleFile    string
	LabelFile     string
	ExportDir     string
	ExportTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.SampleFile == "" {
		o.SampleFile = corpus.DefaultSampleFile
	}
	if o.LabelFile == "" {
		o.LabelFile = corpus.DefaultLabelFile
	}
	if o.ExportTimeout <= 0 {
		o.ExportTimeout = 30 * time.Second
	}
	return o
}

// Svc implements the labeling service
// one session per process, every method holds mu for its whole duration
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	corpus domain.CorpusPort
	opts   Options

	mu          sync.Mutex
	id          string
	paras       []annotate.Paragraph
	labels      annotate.LabelSet
	m           *session.Machine
	exporter    *Exporter
	artifacts   *Artifacts
	exportErr   error
	cleanupErr  error
	startedAt   time.Time
	completedAt time.Time
}

// New constructs a labeling service, Start must run before any other call
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], c domain.CorpusPort, opts Options) *Svc {
	if db == nil {
		panic("labeling.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("labeling.Service requires a non nil Repo binder")
	}
	if c == nil {
		panic("labeling.Service requires a non nil CorpusPort")
	}
	r := binder.Bind(db)
	return &Svc{
		Repo:     r,
		binder:   binder,
		db:       db,
		corpus:   c,
		opts:     opts.withDefaults(),
		exporter: NewExporter(r, opts.ExportDir),
	}
}

// Start prepares the store, loads the corpus and opens the session
// an empty corpus completes immediately
func (s *Svc) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.m != nil {
		return perr.Conflictf("labeling: session already started")
	}
	if err := s.Repo.Migrate(ctx); err != nil {
		return err
	}
	c, err := s.corpus.Load(ctx, s.opts.SampleFile, s.opts.LabelFile)
	if err != nil {
		return err
	}

	s.id = uuid.NewString()
	s.paras = c.Paragraphs
	s.labels = c.Labels
	s.startedAt = time.Now().UTC()
	s.m = session.New(len(s.paras), s.finish)

	logger.C(ctx).Info().
		Str("session_id", s.id).
		Int("paragraphs", len(s.paras)).
		Int("labels", len(s.labels)).
		Msg("labeling session started")

	_, _ = s.m.Check()
	return nil
}

// SessionID returns the id of the running session, "" before Start
func (s *Svc) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Session returns the current view, applying the exhaustion check first
func (s *Svc) Session(ctx context.Context) (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.started(); err != nil {
		return domain.SessionView{}, err
	}
	_, _ = s.m.Check()
	return s.view(ctx), nil
}

// Submit stores the annotation for the current item and advances the session
// the returned view is current even when err is set
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.started(); err != nil {
		return domain.SessionView{}, err
	}

	sub := session.Submission{Index: in.Item}
	if in.Item >= 0 && in.Item < len(s.paras) {
		p := s.paras[in.Item]
		sub.Display = annotate.Flatten(p)
		sub.Annotation = annotate.New(p, in.Labels, s.labels)
	}

	// a dropped request must not abort the write and fail the session
	wctx := context.WithoutCancel(ctx)
	log := logger.C(ctx)
	ph, err := s.m.Submit(sub, func(a annotate.Annotation) error {
		return s.db.Tx(wctx, func(q repokit.Queryer) error { return s.binder.Bind(q).Upsert(wctx, a) })
	})
	switch {
	case err == nil:
		log.Debug().
			Int("item", in.Item).
			Str("fingerprint", sub.Annotation.Fingerprint).
			Str("target", sub.Annotation.Target).
			Str("phase", ph.String()).
			Msg("submission stored")
	case errors.Is(err, session.ErrClosed):
		log.Warn().Err(err).Int("item", in.Item).Str("phase", ph.String()).Msg("submission after session end")
	case ph == session.PhaseFailed:
		log.Error().Err(err).Int("item", in.Item).Msg("submission not persisted, session failed")
	default:
		log.Warn().Err(err).Int("item", in.Item).Msg("submission rejected")
	}
	return s.view(ctx), err
}

// Done ends the session early without writing the current item
func (s *Svc) Done(ctx context.Context) (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.started(); err != nil {
		return domain.SessionView{}, err
	}
	if _, err := s.m.Terminate(); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("done rejected")
		return s.view(ctx), err
	}
	return s.view(ctx), nil
}

// Annotations returns every stored row in insertion order
func (s *Svc) Annotations(ctx context.Context) ([]annotate.Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.Repo.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []annotate.Annotation{}
	}
	return rows, nil
}

// Artifact returns a rendered export once the session completed
func (s *Svc) Artifact(_ context.Context, name string) (domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifacts == nil {
		if s.exportErr != nil {
			return domain.Artifact{}, s.exportErr
		}
		return domain.Artifact{}, perr.Conflictf("labeling: exports are available once the session is complete")
	}
	a, ok := s.artifacts.Get(name)
	if !ok {
		return domain.Artifact{}, perr.NotFoundf("labeling: no export named %q", name)
	}
	return a, nil
}

// finish runs once on entering COMPLETE, export then cleanup
// it is called with mu held by the method driving the transition
// failures are kept on the service and reported through the view
func (s *Svc) finish(st session.State) error {
	ctx, cancel := context.WithTimeout(logger.WithRequest(context.Background(), "", s.id), s.opts.ExportTimeout)
	defer cancel()

	log := logger.C(ctx)
	s.completedAt = time.Now().UTC()

	arts, err := s.exporter.Export(ctx)
	if err != nil {
		s.exportErr = perr.WithOp(err, "labeling.export")
		log.Error().Err(err).Msg("export failed")
		return nil
	}
	s.artifacts = &arts
	log.Info().
		Str("reason", string(st.Reason)).
		Int("submitted", len(st.Accumulated)).
		Int("rows", arts.Rows).
		Msg("labeling session complete")

	if err := s.corpus.Cleanup(s.opts.SampleFile, s.opts.LabelFile); err != nil {
		s.cleanupErr = err
		log.Error().Err(err).Msg("corpus cleanup failed")
	}
	return nil
}

func (s *Svc) started() error {
	if s.m == nil {
		return perr.Unavailablef("labeling: session not started")
	}
	return nil
}

// view builds the session view, callers hold mu
func (s *Svc) view(ctx context.Context) domain.SessionView {
	st := s.m.Snapshot()
	stored, err := s.Repo.Count(context.WithoutCancel(ctx))
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("stored row count unavailable")
	}
	v := domain.SessionView{
		ID:          s.id,
		Phase:       st.Phase.String(),
		Reason:      string(st.Reason),
		Cursor:      st.Cursor,
		Total:       st.Total,
		Stored:      stored,
		Labels:      append([]string{}, s.labels...),
		Accumulated: make([]domain.EntryView, 0, len(st.Accumulated)),
		StartedAt:   s.startedAt,
		CompletedAt: ptime.Ptr(s.completedAt),
	}
	for _, e := range st.Accumulated {
		v.Accumulated = append(v.Accumulated, domain.EntryView{Target: e.Target, Content: e.Content})
	}
	if i, ok := s.m.Current(); ok {
		p := s.paras[i]
		v.Item = &domain.ItemView{
			Index:   i,
			Number:  i + 1,
			Lines:   append([]string{}, p...),
			Display: annotate.Flatten(p),
		}
	}
	if s.artifacts != nil {
		v.Exports = s.artifacts.Names()
	}
	if s.exportErr != nil {
		v.ExportError = s.exportErr.Error()
	}
	if s.cleanupErr != nil {
		v.CleanupError = s.cleanupErr.Error()
	}
	return v
}
