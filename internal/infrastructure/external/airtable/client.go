package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/haulhire/crm/pkg/config"
)

// Record is one row in an Airtable table. Fields are kept opaque so the
// repository layer owns the field-name mapping.
type Record struct {
	ID          string                 `json:"id"`
	Fields      map[string]interface{} `json:"fields"`
	CreatedTime string                 `json:"createdTime,omitempty"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type recordPayload struct {
	Fields map[string]interface{} `json:"fields"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a minimal Airtable REST client scoped to a single table
type Client struct {
	token   string
	baseURL string
	baseID  string
	table   string
	client  *http.Client
}

// NewClient creates a client for the configured base and table
func NewClient(cfg *config.AirtableConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.airtable.com"
	}

	return &Client{
		token:   cfg.Token,
		baseURL: base,
		baseID:  cfg.BaseID,
		table:   cfg.Table,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) tableURL() string {
	return fmt.Sprintf("%s/v0/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.table))
}

// StatusError carries the HTTP status of a failed Airtable call
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("airtable returned status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is an Airtable 404
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, rawURL string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		msg := string(raw)
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && ae.Error.Message != "" {
			msg = ae.Error.Message
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// doWithRetry wraps read calls in exponential backoff. Writes are never
// retried because record mutation is not idempotent here.
func (c *Client) doWithRetry(ctx context.Context, rawURL string, out interface{}) error {
	operation := func() error {
		err := c.do(ctx, http.MethodGet, rawURL, nil, out)
		if err == nil {
			return nil
		}
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(operation, policy)
}

// GetRecord fetches one record by ID
func (c *Client) GetRecord(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := c.doWithRetry(ctx, c.tableURL()+"/"+url.PathEscape(id), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecords fetches all records in the table, following pagination
func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	var all []Record
	offset := ""

	for {
		q := url.Values{}
		if offset != "" {
			q.Set("offset", offset)
		}
		rawURL := c.tableURL()
		if len(q) > 0 {
			rawURL += "?" + q.Encode()
		}

		var page listResponse
		if err := c.doWithRetry(ctx, rawURL, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// FindByFormula returns the first record matching the filter formula,
// or nil when nothing matches
func (c *Client) FindByFormula(ctx context.Context, formula string) (*Record, error) {
	q := url.Values{}
	q.Set("filterByFormula", formula)
	q.Set("maxRecords", "1")

	var page listResponse
	if err := c.doWithRetry(ctx, c.tableURL()+"?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	if len(page.Records) == 0 {
		return nil, nil
	}
	return &page.Records[0], nil
}

// CreateRecord inserts a new record with the given fields
func (c *Client) CreateRecord(ctx context.Context, fields map[string]interface{}) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPost, c.tableURL(), recordPayload{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateRecord patches only the given fields on an existing record
func (c *Client) UpdateRecord(ctx context.Context, id string, fields map[string]interface{}) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPatch, c.tableURL()+"/"+url.PathEscape(id), recordPayload{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
