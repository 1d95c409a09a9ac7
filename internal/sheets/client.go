package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/eest6/calendar-api/internal/config"
	"github.com/eest6/calendar-api/internal/domain"
	"go.uber.org/zap"
)

// maxBodyBytes caps one sheet download. The real sheets are a few KB; this
// only guards against a misconfigured URL serving something huge.
const maxBodyBytes = 4 << 20

// Client downloads the published CSV export of the spreadsheet tabs.
type Client struct {
	httpClient *http.Client
	config     *config.SheetsConfig
	logger     *zap.Logger
}

// NewClient creates a new spreadsheet CSV client
func NewClient(cfg *config.SheetsConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
		config: cfg,
		logger: logger,
	}
}

// FetchSheet downloads and parses one sheet tab. Failures of any sort are
// absorbed into an empty row set: a broken tab must degrade that category,
// never the whole calendar. The error cause is logged, not returned.
func (c *Client) FetchSheet(ctx context.Context, kind domain.SheetKind) [][]string {
	rows, err := c.fetchRows(ctx, kind)
	if err != nil {
		c.logger.Warn("sheet fetch failed, treating as empty",
			zap.String("sheet", kind.SheetName()),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil
	}
	return rows
}

func (c *Client) fetchRows(ctx context.Context, kind domain.SheetKind) ([][]string, error) {
	url := c.config.ExportURL(kind.SheetName())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	rows := ParseRows(string(body))
	c.logger.Debug("sheet fetched",
		zap.String("sheet", kind.SheetName()),
		zap.Int("rows", len(rows)))
	return rows, nil
}
