package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// ErrNoCredentials is returned when the sheet id or API key is missing.
var ErrNoCredentials = errors.New("sheet: sheet id and api key are required")

const defaultFetchTimeout = 15 * time.Second

// Source fetches one range as a grid. Implementations never fail: a range that
// cannot be read comes back empty.
type Source interface {
	Fetch(ctx context.Context, rng string) Grid
}

// Options configures a Client.
type Options struct {
	SheetID string
	APIKey  string
	// Endpoint overrides the values API base URL (tests, proxies). Must end in "/".
	Endpoint string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Client reads ranges through the Google Sheets values API with a static API key.
type Client struct {
	mu       sync.Mutex
	sheetID  string
	apiKey   string
	endpoint string
	svc      *sheets.Service

	timeout time.Duration
	log     *zap.Logger
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		sheetID:  strings.TrimSpace(opts.SheetID),
		apiKey:   strings.TrimSpace(opts.APIKey),
		endpoint: strings.TrimSpace(opts.Endpoint),
		timeout:  timeout,
		log:      log.Named("sheet"),
	}
}

// SetCredentials swaps the sheet id and API key. The next fetch uses them.
func (c *Client) SetCredentials(sheetID, apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sheetID = strings.TrimSpace(sheetID)
	c.apiKey = strings.TrimSpace(apiKey)
	c.svc = nil
}

// Credentials returns the sheet id and API key currently in use.
func (c *Client) Credentials() (sheetID, apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sheetID, c.apiKey
}

// Fetch implements Source. Errors are logged and degrade to an empty grid.
func (c *Client) Fetch(ctx context.Context, rng string) Grid {
	grid, err := c.FetchErr(ctx, rng)
	if err != nil {
		c.log.Warn("fetch range failed", zap.String("range", rng), zap.Error(err))
		return Grid{}
	}
	return grid
}

// FetchErr is Fetch with the error surfaced.
func (c *Client) FetchErr(ctx context.Context, rng string) (Grid, error) {
	svc, sheetID, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := svc.Spreadsheets.Values.Get(sheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s: %w", rng, err)
	}
	return toGrid(resp.Values), nil
}

func (c *Client) service(ctx context.Context) (*sheets.Service, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sheetID == "" || c.apiKey == "" {
		return nil, "", ErrNoCredentials
	}
	if c.svc != nil {
		return c.svc, c.sheetID, nil
	}
	opts := []option.ClientOption{option.WithAPIKey(c.apiKey)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	// ctx only scopes client construction; the service outlives it.
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("sheets service: %w", err)
	}
	c.svc = svc
	return svc, c.sheetID, nil
}

func toGrid(values [][]interface{}) Grid {
	grid := make(Grid, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				continue
			}
			cells[i] = fmt.Sprint(v)
		}
		grid = append(grid, cells)
	}
	return grid
}
