// Package scoutbook fetches merit badge counselor search results: login,
// paginated result retrieval and raw page capture. Field extraction
// lives in parse.go; everything downstream of the raw counselor records
// belongs to the core pipeline.
package scoutbook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/join"
)

const (
	defaultBaseURL = "https://scoutbook.scouting.org"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
)

// SearchParams configures the counselor proximity search.
type SearchParams struct {
	UnitID     string
	Zip        string
	CouncilID  string
	DistrictID string
	Proximity  int
}

// Client is an authenticated counselor-search session.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// New builds a client with retrying transport and a cookie jar for the
// login session.
func New(opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient.Jar = jar

	c := &Client{http: rc, baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login authenticates with the counselor search site using form
// credentials.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("Email", username)
	form.Set("Password", password)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mobile/api/login.asp", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusFound {
		return fmt.Errorf("login failed: unexpected status %d", resp.StatusCode)
	}
	utils.Log.Debug("scoutbook: login succeeded")
	return nil
}

// FetchResultsPage retrieves one page of counselor search results as raw
// HTML.
func (c *Client) FetchResultsPage(ctx context.Context, p SearchParams, page int) (string, error) {
	q := url.Values{}
	q.Set("UnitID", p.UnitID)
	q.Set("MeritBadgeID", "")
	q.Set("formfname", "")
	q.Set("formlname", "")
	q.Set("zip", p.Zip)
	q.Set("formCouncilID", p.CouncilID)
	q.Set("formDistrictID", p.DistrictID)
	q.Set("Proximity", strconv.Itoa(p.Proximity))
	q.Set("Availability", "Available")
	if page > 1 {
		q.Set("Page", strconv.Itoa(page))
	}

	u := c.baseURL + "/mobile/dashboard/admin/counselorresults.asp?" + q.Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching results page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("results page %d: unexpected status %d", page, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ScrapeAll walks every result page, optionally capturing each page's
// raw HTML under captureDir, and returns the extracted raw counselor
// records.
func (c *Client) ScrapeAll(ctx context.Context, p SearchParams, captureDir string) ([]join.RawCounselor, error) {
	if captureDir != "" {
		if err := os.MkdirAll(captureDir, 0755); err != nil {
			return nil, fmt.Errorf("creating capture directory: %w", err)
		}
	}

	var all []join.RawCounselor
	totalPages := 1
	for page := 1; page <= totalPages; page++ {
		html, err := c.FetchResultsPage(ctx, p, page)
		if err != nil {
			return all, err
		}
		if captureDir != "" {
			path := filepath.Join(captureDir, fmt.Sprintf("counselor_search_results_page_%d.html", page))
			if err := os.WriteFile(path, []byte(html), 0644); err != nil {
				return all, fmt.Errorf("capturing page %d: %w", page, err)
			}
		}

		if page == 1 {
			if n, ok := TotalPages(html); ok {
				totalPages = n
				utils.Log.Infof("scoutbook: %d result pages", totalPages)
			} else {
				utils.Log.Warn("scoutbook: could not detect page count, assuming one page")
			}
		}

		counselors, err := ParseCounselors(strings.NewReader(html))
		if err != nil {
			return all, fmt.Errorf("parsing page %d: %w", page, err)
		}
		utils.Log.WithField("page", page).Infof("scoutbook: extracted %d counselors", len(counselors))
		all = append(all, counselors...)
	}
	return all, nil
}
