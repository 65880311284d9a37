// Package fetch retrieves the workout page over the network with
// retry, linear backoff, and anti-block detection.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/wodbot/wodbot/internal/metrics"
	"github.com/wodbot/wodbot/internal/wod"
)

// ErrSuspectedBlock marks a response the detector rejected as an
// anti-bot block or challenge page.
var ErrSuspectedBlock = errors.New("response looks like a block or challenge page")

// Config controls fetcher behavior.
type Config struct {
	// UserAgent is sent on every request. The page rejects default
	// client identifiers, so this should look like a real browser.
	UserAgent string
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// MaxRetries is the total number of attempts, including the first.
	MaxRetries int
	// BaseDelay scales the linear backoff: the wait before attempt n+1
	// is BaseDelay * n.
	BaseDelay time.Duration
}

// Renderer produces a DOM snapshot with JavaScript executed; used as a
// last-resort escalation when plain fetches keep looking blocked.
type Renderer interface {
	Render(ctx context.Context, url string) ([]byte, error)
}

// Fetcher retrieves raw markup via a Colly collector. It is stateless
// across invocations: every Fetch clones the base collector.
type Fetcher struct {
	base     *colly.Collector
	detector *BlockDetector
	renderer Renderer
	cfg      Config
	logger   *zap.Logger

	// sleep is swapped out by tests to observe backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// New constructs a Fetcher. The renderer may be nil to disable
// headless escalation.
func New(cfg Config, detector *BlockDetector, renderer Renderer, logger *zap.Logger) (*Fetcher, error) {
	if cfg.MaxRetries <= 0 {
		return nil, fmt.Errorf("max retries must be > 0, got %d", cfg.MaxRetries)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be > 0, got %s", cfg.Timeout)
	}

	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          8,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.Timeout)

	return &Fetcher{
		base:     base,
		detector: detector,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
		sleep:    sleepContext,
	}, nil
}

// Fetch retrieves the page, retrying on transport errors, timeouts,
// and suspected-block responses with linearly increasing backoff. It
// never returns a suspected-blocked body as success; exhausting every
// attempt yields a *wod.FetchError carrying the attempt count.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			metrics.FetchRetries.Inc()
			delay := f.cfg.BaseDelay * time.Duration(attempt-1)
			if err := f.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		metrics.FetchAttempts.Inc()
		body, err := f.fetchOnce(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			f.logger.Warn("fetch attempt failed",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			continue
		}

		if f.detector != nil && f.detector.SuspectedBlock(body) {
			metrics.SuspectedBlocks.Inc()
			lastErr = ErrSuspectedBlock
			f.logger.Warn("suspected block page, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Int("body_bytes", len(body)),
			)
			continue
		}

		return body, nil
	}

	if body, ok := f.escalate(ctx, url, lastErr); ok {
		return body, nil
	}

	metrics.FetchFailures.Inc()
	return nil, &wod.FetchError{URL: url, Attempts: f.cfg.MaxRetries, Err: lastErr}
}

// escalate tries one headless render when every plain attempt was
// rejected as a block. Transport failures do not escalate: if the
// server is unreachable a browser will not fare better.
func (f *Fetcher) escalate(ctx context.Context, url string, lastErr error) ([]byte, bool) {
	if f.renderer == nil || !errors.Is(lastErr, ErrSuspectedBlock) {
		return nil, false
	}
	metrics.HeadlessRenders.Inc()
	f.logger.Info("escalating to headless render", zap.String("url", url))

	body, err := f.renderer.Render(ctx, url)
	if err != nil {
		f.logger.Warn("headless render failed", zap.String("url", url), zap.Error(err))
		return nil, false
	}
	if f.detector != nil && f.detector.SuspectedBlock(body) {
		metrics.SuspectedBlocks.Inc()
		return nil, false
	}
	return body, true
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collector := f.base.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{body: append([]byte{}, r.Body...)})
	})
	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		if r != nil && r.StatusCode != 0 {
			err = fmt.Errorf("status %d: %w", r.StatusCode, err)
		}
		send(fetchResult{err: err})
	})

	if err := collector.Visit(url); err != nil {
		return nil, err
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return res.body, res.err
	default:
		return nil, errors.New("fetch produced no result")
	}
}

type fetchResult struct {
	body []byte
	err  error
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
