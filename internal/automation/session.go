package automation

import (
	"context"

	"github.com/chromedp/chromedp"
)

// Session is one provisioned headless-browser context. A session is owned
// by exactly one submission at a time and must go back to the pool that
// produced it on every exit path.
type Session interface {
	// Navigate loads the given URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// WaitVisible blocks until the CSS selector matches a visible node.
	WaitVisible(ctx context.Context, selector string) error
	// SendKeys types the value into the node matching the selector.
	SendKeys(ctx context.Context, selector, value string) error
	// Click clicks the first node matching the selector.
	Click(ctx context.Context, selector string) error
}

type chromeSession struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, chromedp.Navigate(url))
}

func (s *chromeSession) WaitVisible(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (s *chromeSession) SendKeys(ctx context.Context, selector, value string) error {
	return s.run(ctx, chromedp.SendKeys(selector, value, chromedp.ByQuery))
}

func (s *chromeSession) Click(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

// run executes actions on the browser context while honoring the caller's
// deadline: the browser context is canceled if ctx expires first.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(s.ctx, actions...)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
