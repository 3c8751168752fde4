package fonts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/yungbote/carousel-backend/internal/pkg/httpx"
	"github.com/yungbote/carousel-backend/internal/platform/envutil"
	"github.com/yungbote/carousel-backend/internal/platform/logger"
)

const (
	defaultMetadataBaseURL = "https://www.googleapis.com/webfonts/v1/webfonts"
	defaultCSSBaseURL      = "https://fonts.googleapis.com/css2"

	metadataTimeout = 30 * time.Second
	cssTimeout      = 10 * time.Second
)

var cssFontURLRe = regexp.MustCompile(`url\(([^)]+)\)`)

// GoogleClient fetches font files from the Google Fonts service, either via
// the webfonts metadata API (requires an API key) or by scraping the CSS
// endpoint (keyless). The default Go user agent makes the CSS endpoint serve
// TTF sources rather than woff2.
type GoogleClient struct {
	log         *logger.Logger
	apiKey      string
	metadataURL string
	cssURL      string

	metaClient *http.Client
	cssClient  *http.Client

	maxRetries int
}

func NewGoogleClient(apiKey string, log *logger.Logger) *GoogleClient {
	metadataURL := envutil.String("GOOGLE_FONTS_METADATA_URL", defaultMetadataBaseURL)
	cssURL := envutil.String("GOOGLE_FONTS_CSS_URL", defaultCSSBaseURL)

	return &GoogleClient{
		log:         log.With("service", "GoogleFontsClient"),
		apiKey:      strings.TrimSpace(apiKey),
		metadataURL: strings.TrimRight(metadataURL, "/"),
		cssURL:      strings.TrimRight(cssURL, "/"),
		metaClient:  &http.Client{Timeout: metadataTimeout},
		cssClient:   &http.Client{Timeout: cssTimeout},
		maxRetries:  2,
	}
}

type googleHTTPError struct {
	StatusCode int
	Body       string
}

func (e *googleHTTPError) Error() string {
	return fmt.Sprintf("google fonts http %d: %s", e.StatusCode, e.Body)
}

func (e *googleHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type webfontItem struct {
	Family string            `json:"family"`
	Files  map[string]string `json:"files"`
}

type webfontsResponse struct {
	Items []webfontItem `json:"items"`
}

// FetchFamily resolves family+weight via the metadata API and downloads the
// referenced file. Requires an API key.
func (g *GoogleClient) FetchFamily(ctx context.Context, family, weight string) ([]byte, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google fonts api key not configured")
	}

	q := url.Values{}
	q.Set("key", g.apiKey)
	q.Set("family", family)

	raw, err := g.get(ctx, g.metaClient, g.metadataURL+"?"+q.Encode(), "")
	if err != nil {
		return nil, fmt.Errorf("google fonts metadata: %w", err)
	}

	var resp webfontsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("google fonts metadata decode: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("google fonts metadata: family %q not found", family)
	}

	item := resp.Items[0]
	fileURL := item.Files[metadataFileKey(weight)]
	if fileURL == "" {
		fileURL = item.Files["regular"]
	}
	if fileURL == "" {
		return nil, fmt.Errorf("google fonts metadata: no file for %s weight %s", family, weight)
	}

	data, err := g.download(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("google fonts download: %w", err)
	}
	return data, nil
}

// The metadata API keys the upright 400 cut as "regular" rather than "400".
func metadataFileKey(weight string) string {
	w := strings.TrimSpace(weight)
	if w == "" || w == "400" {
		return "regular"
	}
	return w
}

// FetchCSS requests the stylesheet for family+weight and downloads the first
// font file it references. Works without an API key.
func (g *GoogleClient) FetchCSS(ctx context.Context, family, weight string) ([]byte, error) {
	w := strings.TrimSpace(weight)
	if w == "" {
		w = "400"
	}

	q := url.Values{}
	q.Set("family", fmt.Sprintf("%s:wght@%s", family, w))
	q.Set("display", "swap")

	body, err := g.get(ctx, g.cssClient, g.cssURL+"?"+q.Encode(), "")
	if err != nil {
		return nil, fmt.Errorf("google fonts css: %w", err)
	}

	fileURL := firstFontURL(string(body))
	if fileURL == "" {
		return nil, fmt.Errorf("google fonts css: no font url for %s weight %s", family, w)
	}

	data, err := g.download(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("google fonts download: %w", err)
	}
	return data, nil
}

func firstFontURL(css string) string {
	for _, m := range cssFontURLRe.FindAllStringSubmatch(css, -1) {
		u := strings.Trim(strings.TrimSpace(m[1]), `'"`)
		lower := strings.ToLower(u)
		if strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf") ||
			strings.HasSuffix(lower, ".woff2") || strings.HasSuffix(lower, ".woff") {
			return u
		}
	}
	return ""
}

// download fetches a font file, retrying transient failures.
func (g *GoogleClient) download(ctx context.Context, fileURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		data, err := g.get(ctx, g.metaClient, fileURL, "")
		if err == nil {
			if len(data) == 0 {
				return nil, fmt.Errorf("empty font file from %s", fileURL)
			}
			return data, nil
		}
		lastErr = err

		if !httpx.IsRetryableError(err) || attempt == g.maxRetries {
			return nil, err
		}

		sleepFor := httpx.JitterSleep(httpx.Backoff(attempt, 500*time.Millisecond, 5*time.Second))
		g.log.Warn("Font download retrying",
			"url", fileURL,
			"attempt", attempt+1,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
	}
	return nil, lastErr
}

func (g *GoogleClient) get(ctx context.Context, client *http.Client, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := string(raw)
		if len(body) > 512 {
			body = body[:512]
		}
		return nil, &googleHTTPError{StatusCode: resp.StatusCode, Body: body}
	}
	return raw, nil
}
