package newsletter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/osteele/liquid"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/pkg/httpretry"
)

const feedDigestBody = `<div>
{% for item in items %}    <h2><a href="{{ item.link }}">{{ item.title }}</a></h2>
    <p>{{ item.summary }}</p>
{% endfor %}</div>`

// FeedBuilder turns an RSS/Atom feed into a ready-to-publish newsletter
// issue: the feed title becomes the subject and the newest items become an
// HTML digest.
type FeedBuilder struct {
	client       httpretry.HTTPDoer
	parser       *gofeed.Parser
	digestTpl    *liquid.Template
	defaultItems int
}

// NewFeedBuilder creates a feed builder. defaultItems caps the digest when
// the caller does not ask for a specific item count. Feed fetches are
// read-only, so they go through the retrying HTTP client, unlike email sends.
func NewFeedBuilder(timeout time.Duration, defaultItems int) *FeedBuilder {
	if defaultItems <= 0 {
		defaultItems = 5
	}
	tpl, err := liquid.NewEngine().ParseString(feedDigestBody)
	if err != nil {
		panic(fmt.Sprintf("newsletter: parse feed digest template: %v", err))
	}
	return &FeedBuilder{
		client:       httpretry.NewRetryClient(&http.Client{Timeout: timeout}, 3),
		parser:       gofeed.NewParser(),
		digestTpl:    tpl,
		defaultItems: defaultItems,
	}
}

// IssueFromFeed fetches feedURL and builds an issue from its newest maxItems
// entries. Zero or negative maxItems falls back to the builder default.
func (b *FeedBuilder) IssueFromFeed(ctx context.Context, feedURL string, maxItems int) (*domain.NewsletterIssue, error) {
	if feedURL == "" {
		return nil, wrapErr(KindValidation, "invalid feed request",
			domain.NewValidationError("feed_url must not be empty"))
	}
	if maxItems <= 0 {
		maxItems = b.defaultItems
	}

	feed, err := b.fetch(ctx, feedURL)
	if err != nil {
		return nil, wrapErr(KindFeed, "fetch feed", err)
	}
	if len(feed.Items) == 0 {
		return nil, wrapErr(KindFeed, "fetch feed", fmt.Errorf("feed %s has no items", feedURL))
	}
	if len(feed.Items) > maxItems {
		feed.Items = feed.Items[:maxItems]
	}

	items := make([]map[string]interface{}, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, map[string]interface{}{
			"title":   item.Title,
			"link":    item.Link,
			"summary": item.Description,
		})
	}

	html, err := b.digestTpl.RenderString(liquid.Bindings{"items": items})
	if err != nil {
		return nil, wrapErr(KindFeed, "render feed digest", err)
	}

	return &domain.NewsletterIssue{
		Title:   feed.Title,
		Content: domain.IssueContent{HTML: html},
	}, nil
}

func (b *FeedBuilder) fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", feedURL, resp.StatusCode)
	}

	feed, err := b.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", feedURL, err)
	}
	return feed, nil
}
