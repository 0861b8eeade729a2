// Package ingest runs the company profile pipeline: render the seed page,
// filter its links, aggregate their text, and extract a structured profile.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/supplier"
)

// Ensure Service implements supplier.Ingester at compile time.
var _ supplier.Ingester = (*Service)(nil)

// Default stage timeouts.
const (
	DefaultRenderTimeout    = 60 * time.Second
	DefaultAggregateTimeout = 60 * time.Second
	DefaultExtractTimeout   = 120 * time.Second
)

// Service orchestrates one ingestion. Stages run strictly in sequence.
type Service struct {
	Renderer   supplier.Renderer
	Aggregator supplier.Aggregator
	Extractor  supplier.ProfileExtractor
	Logger     *slog.Logger

	// Per-stage timeouts. Zero disables the bound for that stage.
	RenderTimeout    time.Duration
	AggregateTimeout time.Duration
	ExtractTimeout   time.Duration

	// OnCorpus, if set, receives the filtered links and the aggregated
	// corpus before extraction starts.
	OnCorpus func(stats supplier.CorpusStats)
}

// Run ingests req and converts the outcome into a Result. It never returns
// an error; failures are logged and reported in Result.Error.
func (s *Service) Run(ctx context.Context, req supplier.Request) supplier.Result {
	profile, err := s.Ingest(ctx, req)
	if err != nil {
		s.logger().Error("ingest failed",
			"company", req.CompanyName,
			"url", req.CompanyURL,
			"code", supplier.ErrorCode(err),
			"err", err,
		)
	}
	return supplier.NewResult(profile, err)
}

// Ingest produces a Profile for req. An invalid request fails before any
// capability is invoked.
func (s *Service) Ingest(ctx context.Context, req supplier.Request) (*supplier.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.CompanyURL == "" {
		return nil, supplier.Errorf(supplier.ERENDER, "company URL required")
	}

	page, err := s.render(ctx, req.CompanyURL)
	if err != nil {
		return nil, err
	}

	links := supplier.FilterLinks(page.Links)
	s.logger().Debug("links discovered", "url", req.CompanyURL, "discovered", len(page.Links), "kept", len(links))

	corpus, err := s.aggregate(ctx, links)
	if err != nil {
		return nil, err
	}
	if s.OnCorpus != nil {
		s.OnCorpus(supplier.CorpusStats{Links: links, Corpus: corpus})
	}

	return s.extract(ctx, corpus, req.CompanyName)
}

func (s *Service) render(ctx context.Context, url string) (*supplier.RenderedPage, error) {
	ctx, cancel := withTimeout(ctx, s.RenderTimeout)
	defer cancel()

	page, err := s.Renderer.Render(ctx, url)
	if err != nil {
		return nil, coded(supplier.ERENDER, err)
	}
	return page, nil
}

// aggregate bounds the fan-out by AggregateTimeout. Links still in flight
// when that deadline passes count as failed links; only the caller's own
// context ending is fatal.
func (s *Service) aggregate(ctx context.Context, links []string) (string, error) {
	stageCtx, cancel := withTimeout(ctx, s.AggregateTimeout)
	defer cancel()

	corpus, err := s.Aggregator.Aggregate(stageCtx, links)
	if err == nil {
		return corpus, nil
	}
	if ctx.Err() == nil && errors.Is(stageCtx.Err(), context.DeadlineExceeded) {
		s.logger().Warn("aggregate deadline reached, continuing with settled links",
			"links", len(links),
			"timeout", s.AggregateTimeout,
		)
		return corpus, nil
	}
	return "", coded(supplier.EFETCH, err)
}

func (s *Service) extract(ctx context.Context, corpus, companyName string) (*supplier.Profile, error) {
	ctx, cancel := withTimeout(ctx, s.ExtractTimeout)
	defer cancel()

	profile, err := s.Extractor.ExtractProfile(ctx, corpus, companyName)
	if err != nil {
		return nil, coded(supplier.ECOMPLETION, err)
	}
	return profile, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// coded attaches code to err unless err already carries an application code.
func coded(code string, err error) error {
	if supplier.ErrorCode(err) != supplier.EINTERNAL {
		return err
	}
	return supplier.Errorf(code, "%v", err)
}
