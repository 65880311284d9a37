package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromedpRenderer renders the page in headless Chrome, executing any
// JavaScript a challenge page relies on, and returns the DOM snapshot.
type ChromedpRenderer struct {
	allocatorCancel context.CancelFunc
	browserCtx      context.Context
	browserCancel   context.CancelFunc
	logger          *zap.Logger
	timeout         time.Duration
	userAgent       string
}

// NewChromedpRenderer starts a headless browser ready to render. Close
// must be called to tear it down.
func NewChromedpRenderer(userAgent string, timeout time.Duration, logger *zap.Logger) (*ChromedpRenderer, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(userAgent),
	)
	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocatorCancel()
		return nil, fmt.Errorf("chromedp warmup: %w", err)
	}

	return &ChromedpRenderer{
		allocatorCancel: allocatorCancel,
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
		logger:          logger,
		timeout:         timeout,
		userAgent:       userAgent,
	}, nil
}

// Close tears down the browser and allocator contexts.
func (r *ChromedpRenderer) Close() {
	if r == nil {
		return
	}
	r.browserCancel()
	r.allocatorCancel()
}

// Render navigates to the URL in a fresh tab and returns the rendered
// document's outer HTML.
func (r *ChromedpRenderer) Render(ctx context.Context, url string) ([]byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(r.browserCtx)
	defer cancelTab()

	taskCtx, cancelTask := context.WithTimeout(tabCtx, r.timeout)
	defer cancelTask()

	stop := forwardCancel(ctx, cancelTask)
	defer stop()

	var html string
	tasks := chromedp.Tasks{
		network.Enable(),
		emulation.SetUserAgentOverride(r.userAgent),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(taskCtx, tasks); err != nil {
		return nil, fmt.Errorf("chromedp run: %w", err)
	}

	r.logger.Debug("headless render complete",
		zap.String("url", url),
		zap.Int("body_bytes", len(html)),
	)
	return []byte(html), nil
}

// forwardCancel propagates cancellation from the caller's context into
// the chromedp task context, which has its own lineage.
func forwardCancel(parent context.Context, cancel context.CancelFunc) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
