package pipeline

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/okrenov/samforge/internal/cache"
	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/util"
	"github.com/okrenov/samforge/internal/worker"
)

// fetchSleepFunc is the sleep used before the single transient retry
// (injectable for tests)
var fetchSleepFunc = time.Sleep

// captionBaseURL and oembedBaseURL point at the caption and title endpoints
// (injectable for tests)
var (
	captionBaseURL = "https://video.google.com/timedtext"
	oembedBaseURL  = "https://www.youtube.com/oembed"
)

// videoLinkPattern recognizes the supported video platforms
var videoLinkPattern = regexp.MustCompile(`(?i)(?:youtube\.com/watch\?|youtu\.be/)`)

// maxCrawlDelay caps how long a robots.txt crawl-delay can stall one fetch
const maxCrawlDelay = 10 * time.Second

// Fetcher resolves a source reference (raw text, article URL or video link)
// into plain source text
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache // nil disables caching
}

// NewFetcher creates a new source fetcher
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, limiter *worker.Limiter, c cache.Cache) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		robots:    util.NewRobotsChecker(userAgent, timeout),
		limiter:   limiter,
		cache:     c,
	}
}

// ResolvedSource is the outcome of source resolution
type ResolvedSource struct {
	Text  string // Plain source text, non-empty on success
	Title string // Best-effort title, may be empty
	Ref   string // What was resolved: URL or "pasted"
}

// Resolve turns a source reference into source text. Pasted text passes
// through; http(s) references are fetched as captions (video links) or as an
// article body.
func (f *Fetcher) Resolve(ctx context.Context, source string) (*ResolvedSource, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, model.NewError(model.CodeInputInvalid, "source is empty", nil)
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return &ResolvedSource{Text: trimmed, Ref: "pasted"}, nil
	}

	if videoLinkPattern.MatchString(trimmed) {
		return f.resolveVideo(ctx, trimmed)
	}
	return f.resolveArticle(ctx, trimmed)
}

// resolveVideo fetches captions for a recognized video link. The companion
// title lookup runs concurrently and its failure never fails the resolution.
func (f *Fetcher) resolveVideo(ctx context.Context, rawURL string) (*ResolvedSource, error) {
	videoID, err := extractVideoID(rawURL)
	if err != nil {
		return nil, model.NewError(model.CodeInputInvalid, err.Error(), err)
	}

	titleCh := make(chan string, 1)
	go func() {
		titleCh <- f.lookupTitle(ctx, rawURL)
	}()

	text, err := f.fetchCaptions(ctx, videoID, rawURL)
	if err != nil {
		return nil, err
	}

	return &ResolvedSource{
		Text:  text,
		Title: <-titleCh,
		Ref:   rawURL,
	}, nil
}

// fetchCaptions retrieves caption text, retrying transient failures once.
// An empty caption track is terminal: there is nothing to retry.
func (f *Fetcher) fetchCaptions(ctx context.Context, videoID, rawURL string) (string, error) {
	captionsURL := fmt.Sprintf("%s?lang=en&v=%s", captionBaseURL, url.QueryEscape(videoID))

	if text, ok := f.cached(captionsURL); ok {
		return text, nil
	}

	body, err := f.get(ctx, captionsURL)
	if err != nil {
		fetchSleepFunc(time.Second)
		body, err = f.get(ctx, captionsURL)
		if err != nil {
			return "", model.NewError(model.CodeInternal, fmt.Sprintf("caption fetch failed: %v", err), err)
		}
	}

	text := parseCaptionTrack(body)
	if strings.TrimSpace(text) == "" {
		return "", model.NewError(model.CodeTranscriptUnavailable,
			fmt.Sprintf("no captions available for %s; paste the transcript text directly", rawURL), nil)
	}

	f.store(captionsURL, text)
	return text, nil
}

// lookupTitle queries the oEmbed endpoint; best-effort only
func (f *Fetcher) lookupTitle(ctx context.Context, rawURL string) string {
	oembedURL := oembedBaseURL + "?format=json&url=" + url.QueryEscape(rawURL)

	body, err := f.get(ctx, oembedURL)
	if err != nil {
		return ""
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	return payload.Title
}

// resolveArticle politely fetches a web page and extracts its visible text
func (f *Fetcher) resolveArticle(ctx context.Context, rawURL string) (*ResolvedSource, error) {
	if text, ok := f.cached(rawURL); ok {
		return &ResolvedSource{Text: text, Title: subjectFromURL(rawURL), Ref: rawURL}, nil
	}

	allowed, crawlDelay, _ := f.robots.CanFetch(ctx, rawURL)
	if !allowed {
		return nil, model.Errorf(model.CodeInputInvalid, "robots.txt disallows fetching %s", rawURL)
	}
	if crawlDelay > maxCrawlDelay {
		crawlDelay = maxCrawlDelay
	}
	if f.limiter != nil {
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	body, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, model.NewError(model.CodeInputInvalid, fmt.Sprintf("source unreachable: %v", err), err)
	}

	text, err := extractVisibleText(body)
	if err != nil || strings.TrimSpace(text) == "" {
		return nil, model.Errorf(model.CodeInputInvalid, "no readable text at %s", rawURL)
	}

	f.store(rawURL, text)
	return &ResolvedSource{Text: text, Title: subjectFromURL(rawURL), Ref: rawURL}, nil
}

// get performs one GET with size cap and status check
func (f *Fetcher) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

func (f *Fetcher) cached(key string) (string, bool) {
	if f.cache == nil {
		return "", false
	}
	if data, found := f.cache.Get(cache.Key(key)); found {
		return string(data), true
	}
	return "", false
}

func (f *Fetcher) store(key, text string) {
	if f.cache != nil {
		_ = f.cache.Set(cache.Key(key), []byte(text), 0)
	}
}

// extractVideoID pulls the video identifier from a recognized link
func extractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse video URL: %w", err)
	}

	if strings.Contains(parsed.Host, "youtu.be") {
		id := strings.Trim(parsed.Path, "/")
		if id == "" {
			return "", fmt.Errorf("no video id in %s", rawURL)
		}
		return id, nil
	}

	id := parsed.Query().Get("v")
	if id == "" {
		return "", fmt.Errorf("no video id in %s", rawURL)
	}
	return id, nil
}

// captionTrack is the timedtext XML shape
type captionTrack struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// parseCaptionTrack extracts plain text from a timedtext XML document
func parseCaptionTrack(body string) string {
	var track captionTrack
	if err := xml.Unmarshal([]byte(body), &track); err != nil {
		return ""
	}

	var b strings.Builder
	for _, line := range track.Lines {
		text := strings.TrimSpace(line.Text)
		if text != "" {
			b.WriteString(text)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

// extractVisibleText parses HTML and collects text nodes, skipping
// script/style content
func extractVisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				b.WriteString(text)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String()), nil
}

// subjectFromURL extracts a human-readable subject from a URL path
func subjectFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return last
}
