package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync/feature/catalog/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	headerTotal      = "X-WP-Total"
	headerTotalPages = "X-WP-TotalPages"
	maxErrorBody     = 512
)

// errNotProductArray rejects a 200 response whose body is JSON null.
var errNotProductArray = errors.New("response is not a product array")

// Page is one decoded page of products.
type Page struct {
	Number     int
	Products   []models.RemoteProduct
	Total      int // X-WP-Total, -1 when absent
	TotalPages int // X-WP-TotalPages, -1 when absent
}

// Client pulls products from the WooCommerce REST API.
type Client struct {
	cfg      Config
	http     *http.Client
	limiter  *rate.Limiter
	validate *validator.Validate
	logger   *zap.Logger
}

// NewClient creates a client. Page requests are spaced by cfg.PageDelay.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.PageDelay > 0 {
		limit = rate.Every(cfg.PageDelay)
	}

	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, 1),
		validate: newValidator(),
		logger:   logger,
	}
}

// FetchAll pulls every page in ascending order and returns the products in
// pull order. Any failure returns nothing.
func (c *Client) FetchAll(ctx context.Context) ([]models.RemoteProduct, error) {
	size := c.cfg.pageSize()
	start := time.Now()
	expected := -1

	var all []models.RemoteProduct
	page := 1
	for ; ; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &RemoteFetchError{Page: page, Err: err}
		}

		p, err := c.FetchPage(ctx, page)
		if err != nil {
			if page > 1 && isEndOfPages(err) {
				c.logger.Debug("Page past the end, stopping", zap.Int("page", page))
				page--
				break
			}
			c.logger.Error("Failed to fetch products page", zap.Int("page", page), zap.Error(err))
			return nil, err
		}

		if page == 1 {
			expected = p.Total
		}
		all = append(all, p.Products...)

		c.logger.Debug("Fetched products page",
			zap.Int("page", page),
			zap.Int("count", len(p.Products)),
			zap.Int("total_so_far", len(all)),
		)

		if len(p.Products) < size {
			break
		}
	}

	if expected >= 0 && expected != len(all) {
		c.logger.Warn("Pulled product count differs from remote total",
			zap.Int("pulled", len(all)),
			zap.Int("remote_total", expected),
		)
	}

	c.logger.Info("Fetched remote catalog",
		zap.Int("products", len(all)),
		zap.Int("pages", page),
		zap.Duration("duration", time.Since(start)),
	)

	return all, nil
}

// FetchPage requests and validates a single page.
func (c *Client) FetchPage(ctx context.Context, page int) (*Page, error) {
	resp, err := c.get(ctx, page, c.cfg.pageSize())
	if err != nil {
		return nil, &RemoteFetchError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RemoteFetchError{
			Page:       page,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteFetchError{Page: page, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &RemoteFetchError{Page: page, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode body: %w", err)}
	}
	if raw == nil {
		return nil, &RemoteFetchError{Page: page, StatusCode: resp.StatusCode, Err: errNotProductArray}
	}

	products, err := c.decodePage(page, raw)
	if err != nil {
		return nil, &RemoteFetchError{Page: page, StatusCode: resp.StatusCode, Err: err}
	}

	return &Page{
		Number:     page,
		Products:   products,
		Total:      headerInt(resp.Header, headerTotal),
		TotalPages: headerInt(resp.Header, headerTotalPages),
	}, nil
}

// Count returns the remote product total from the X-WP-Total header.
func (c *Client) Count(ctx context.Context) (int, error) {
	resp, err := c.get(ctx, 1, 1)
	if err != nil {
		return 0, &RemoteFetchError{Page: 1, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &RemoteFetchError{Page: 1, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response")}
	}

	total := headerInt(resp.Header, headerTotal)
	if total < 0 {
		return 0, fmt.Errorf("missing %s header", headerTotal)
	}
	return total, nil
}

func (c *Client) get(ctx context.Context, page, perPage int) (*http.Response, error) {
	u, err := c.productsURL(page, perPage)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "catalog-sync")

	return c.http.Do(req)
}

func (c *Client) productsURL(page, perPage int) (string, error) {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	if base == "" {
		return "", fmt.Errorf("woocommerce base url is not configured")
	}
	path := "/" + strings.Trim(c.cfg.APIPath, "/")

	u, err := url.Parse(base + path + "/products")
	if err != nil {
		return "", fmt.Errorf("invalid woocommerce url: %w", err)
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if c.cfg.Status != "" {
		q.Set("status", c.cfg.Status)
	}
	q.Set("orderby", "id")
	q.Set("order", "asc")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// isEndOfPages matches WooCommerce's answer to a page number past the last page.
func isEndOfPages(err error) bool {
	fe, ok := err.(*RemoteFetchError)
	return ok && (fe.StatusCode == http.StatusBadRequest || fe.StatusCode == http.StatusNotFound)
}

func headerInt(h http.Header, key string) int {
	v := h.Get(key)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 || n > math.MaxInt32 {
		return -1
	}
	return n
}
