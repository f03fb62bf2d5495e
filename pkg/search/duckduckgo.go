package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
	"pairfetch/pkg/config"
	perrors "pairfetch/pkg/errors"
	"pairfetch/pkg/logger"
)

const (
	// TokenPath is requested first to obtain the vqd search token
	TokenPath = "/"

	// ImagesPath is the JSON image search endpoint
	ImagesPath = "/i.js"
)

var vqdPattern = regexp.MustCompile(`vqd=["']?([A-Za-z0-9_-]+)`)

var safeSearchParam = map[string]string{
	"on":       "1",
	"moderate": "1",
	"off":      "-1",
}

// Image is one image search hit
type Image struct {
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type imagesResponse struct {
	Results []Image `json:"results"`
	Next    string  `json:"next"`
}

// Client queries DuckDuckGo image search
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	region     string
	safeSearch string
	maxPages   int
	logger     logger.Logger
}

// NewClient creates a DuckDuckGo image search client from cfg
func NewClient(cfg config.SearchConfig, userAgent string, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	safe, ok := safeSearchParam[strings.ToLower(cfg.SafeSearch)]
	if !ok {
		safe = safeSearchParam["moderate"]
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	base := strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		headers: map[string]string{
			"User-Agent":      userAgent,
			"Accept":          "application/json, text/javascript, */*; q=0.01",
			"Accept-Language": "en-US,en;q=0.9",
			"Referer":         base + "/",
		},
		baseURL:    base,
		region:     cfg.Region,
		safeSearch: safe,
		maxPages:   maxPages,
		logger:     log.WithField("component", "search"),
	}, nil
}

// Images returns up to max image hits for query in provider order.
// Hits without an image URL and repeated URLs are dropped.
func (c *Client) Images(ctx context.Context, query string, max int) ([]Image, error) {
	vqd, err := c.token(ctx, query)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("l", c.region)
	params.Set("o", "json")
	params.Set("q", query)
	params.Set("vqd", vqd)
	params.Set("f", ",,,,,")
	params.Set("p", c.safeSearch)

	seen := make(map[string]bool)
	var images []Image

	for page := 0; page < c.maxPages && len(images) < max; page++ {
		var resp imagesResponse
		if err := c.getJSON(ctx, c.baseURL+ImagesPath+"?"+params.Encode(), &resp); err != nil {
			if page > 0 {
				// Keep what earlier pages produced
				c.logger.WithError(err).WarnWithFields("stopping pagination", map[string]interface{}{
					"query": query,
					"page":  page,
				})
				break
			}
			return nil, err
		}

		for _, img := range resp.Results {
			if img.Image == "" || seen[img.Image] {
				continue
			}
			seen[img.Image] = true
			images = append(images, img)
			if len(images) == max {
				break
			}
		}

		offset := nextOffset(resp.Next)
		if offset == "" {
			break
		}
		params.Set("s", offset)
	}

	c.logger.DebugWithFields("image search completed", map[string]interface{}{
		"query":   query,
		"results": len(images),
	})

	return images, nil
}

// token fetches the landing page for query and extracts the vqd token
func (c *Client) token(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)

	body, err := c.get(ctx, c.baseURL+TokenPath+"?"+params.Encode())
	if err != nil {
		return "", err
	}

	match := vqdPattern.FindSubmatch(body)
	if match == nil {
		return "", perrors.New(perrors.ErrorTypeParsing, "search token not found for %q", query)
	}
	return string(match[1]), nil
}

// nextOffset extracts the s parameter from a "next" link such as
// "i.js?q=cat&o=json&p=1&s=100&u=bing"
func nextOffset(next string) string {
	if next == "" {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil {
		return ""
	}
	return u.Query().Get("s")
}

func (c *Client) getJSON(ctx context.Context, rawURL string, target interface{}) error {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.DebugWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          rawURL,
			"body_preview": bodyPreview,
		})
		return perrors.Wrap(perrors.ErrorTypeParsing, err, "failed to parse search response")
	}
	return nil
}

// get performs a GET with the client headers and returns the body of a 200 response
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrorTypeSearch, err, "failed to create request")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrorTypeNetwork, err, "search request failed")
	}
	defer resp.Body.Close()

	logger.LogRequest(c.logger, req.Method, rawURL, resp.StatusCode, float64(time.Since(start).Milliseconds()))

	if err := checkResponseStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &perrors.Error{
			Type:    perrors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
			Err:     err,
		}
	}
	return body, nil
}

// checkResponseStatus maps non-200 responses to typed errors
func checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusForbidden, http.StatusTooManyRequests:
		// DuckDuckGo answers throttled clients with 403 as well as 429
		return &perrors.Error{
			Type:    perrors.ErrorTypeRateLimit,
			Message: "search rate limited",
			Code:    resp.StatusCode,
		}
	default:
		errorType := perrors.ClassifyStatusCode(resp.StatusCode)
		if errorType == perrors.ErrorTypeUnknown {
			errorType = perrors.ErrorTypeSearch
		}
		return &perrors.Error{
			Type:    errorType,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}
}
