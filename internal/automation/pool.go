package automation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrDriverUnavailable is returned when a browser session cannot be
// provisioned. Callers treat it as a submission failure, not a crash.
var ErrDriverUnavailable = errors.New("automation driver unavailable")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Pool hands out browser sessions up to a fixed capacity. Concurrent
// submissions beyond capacity queue on Acquire instead of over-provisioning.
type Pool interface {
	Acquire(ctx context.Context) (Session, error)
	Release(Session)
	// InUse reports the number of sessions currently held.
	InUse() int64
}

// ChromePool provisions sandboxed headless Chrome sessions via chromedp
// with a fixed viewport and a realistic user agent.
type ChromePool struct {
	sem      *semaphore.Weighted
	inUse    atomic.Int64
	headless bool
	log      *zap.Logger

	// launch is swapped out in tests so capacity accounting can be
	// exercised without a browser binary.
	launch func(ctx context.Context) (Session, error)
}

func NewChromePool(capacity int, headless bool, log *zap.Logger) *ChromePool {
	if capacity < 1 {
		capacity = 1
	}
	p := &ChromePool{
		sem:      semaphore.NewWeighted(int64(capacity)),
		headless: headless,
		log:      log,
	}
	p.launch = p.launchChrome
	return p
}

// Acquire blocks until capacity is available, then provisions a session.
func (p *ChromePool) Acquire(ctx context.Context) (Session, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDriverUnavailable, err)
	}
	session, err := p.launch(ctx)
	if err != nil {
		p.sem.Release(1)
		return nil, fmt.Errorf("%w: %v", ErrDriverUnavailable, err)
	}
	p.inUse.Add(1)
	return session, nil
}

// Release shuts the session down and returns its slot to the pool. It must
// be called on every exit path; a leaked session permanently reduces the
// concurrency the pool can offer.
func (p *ChromePool) Release(s Session) {
	if cs, ok := s.(*chromeSession); ok && cs.cancel != nil {
		cs.cancel()
	}
	p.inUse.Add(-1)
	p.sem.Release(1)
}

func (p *ChromePool) InUse() int64 {
	return p.inUse.Load()
}

func (p *ChromePool) launchChrome(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", p.headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(defaultUserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}

	// Start the browser process eagerly so provisioning failures surface
	// here rather than on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, err
	}

	p.log.Debug("browser session provisioned")
	return &chromeSession{ctx: browserCtx, cancel: cancel}, nil
}
