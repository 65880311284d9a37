// Package pipeline composes the fetch and extraction stages into the
// final structured record. Every stage past the network boundary
// degrades gracefully: only total fetch failure reaches the caller as
// an error.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wodbot/wodbot/internal/classify"
	"github.com/wodbot/wodbot/internal/dates"
	"github.com/wodbot/wodbot/internal/extract"
	"github.com/wodbot/wodbot/internal/metrics"
	"github.com/wodbot/wodbot/internal/wod"
)

const isoLayout = "2006-01-02"

// Fetcher retrieves raw markup for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Pipeline runs fetch → locate → normalize/classify → assemble. It
// holds no per-invocation state; each Run is independent.
type Pipeline struct {
	fetcher    Fetcher
	locator    *extract.Locator
	normalizer *dates.Normalizer
	classifier *classify.Classifier
	clock      wod.Clock
	logger     *zap.Logger
}

// New wires the pipeline stages together.
func New(
	fetcher Fetcher,
	locator *extract.Locator,
	normalizer *dates.Normalizer,
	classifier *classify.Classifier,
	clock wod.Clock,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		locator:    locator,
		normalizer: normalizer,
		classifier: classifier,
		clock:      clock,
		logger:     logger,
	}
}

// Run fetches the page and assembles a Record. The returned error is
// non-nil only when the fetcher exhausted every attempt; the caller may
// substitute an offline fallback workout in that case. All extraction
// irregularities are absorbed into sentinel values.
func (p *Pipeline) Run(ctx context.Context, url string) (wod.Record, error) {
	log := p.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("url", url),
	)

	markup, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Error("fetch failed", zap.Error(err))
		return wod.Record{}, err
	}

	record := p.assemble(log, url, markup)
	metrics.RecordsAssembled.WithLabelValues(restDayLabel(record.IsRestDay)).Inc()
	log.Info("record assembled",
		zap.String("iso_date", record.ISODate),
		zap.Bool("is_rest_day", record.IsRestDay),
		zap.Bool("has_scaled", record.HasScaled()),
	)
	return record, nil
}

// assemble converts markup into a structurally complete Record. A panic
// in any extraction stage is caught here and converted into a
// best-effort placeholder record rather than propagated.
func (p *Pipeline) assemble(log *zap.Logger, url string, markup []byte) (record wod.Record) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("extraction panicked", zap.Any("panic", r))
			p.degrade(log, wod.DegradeAssemblyPanic)
			record = wod.Record{
				DateToken:   wod.UnknownDateToken,
				ISODate:     p.clock.Now().Format(isoLayout),
				IsRestDay:   false,
				WorkoutText: wod.WorkoutParseFailed,
				SourceURL:   url,
			}
		}
	}()

	ext, degradations := p.locator.Locate(markup)
	for _, d := range degradations {
		p.degrade(log, d)
	}

	dateToken := ext.DateToken
	if dateToken == "" {
		dateToken = wod.UnknownDateToken
	}

	isoDate, parsed := p.normalizer.Normalize(ext.DateToken)
	if !parsed && ext.DateToken != "" {
		p.degrade(log, wod.DegradeBadDateToken)
	}

	workoutText := ext.WorkoutText
	if workoutText == "" {
		workoutText = wod.WorkoutNotFound
	}

	return wod.Record{
		DateToken:   dateToken,
		ISODate:     isoDate,
		IsRestDay:   p.classifier.IsRestDay(ext.WorkoutText),
		WorkoutText: workoutText,
		ScaledText:  ext.ScaledText,
		SourceURL:   url,
	}
}

func (p *Pipeline) degrade(log *zap.Logger, reason wod.Degradation) {
	metrics.Degradations.WithLabelValues(string(reason)).Inc()
	log.Warn("extraction degraded", zap.String("reason", string(reason)))
}

func restDayLabel(isRestDay bool) string {
	if isRestDay {
		return "true"
	}
	return "false"
}
