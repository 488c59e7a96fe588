// Package storage is a client for a Supabase-compatible object storage REST
// API: upload, list, and public URL construction for one project.
package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/pkordes/european-living/internal/domain"
)

// PlaceholderName is the marker object the storage service creates for an
// empty folder. Listings skip it.
const PlaceholderName = ".emptyFolderPlaceholder"

// Object is one entry of a bucket listing.
type Object struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Client talks to the storage API at baseURL using key as both the API key
// and the bearer token.
type Client struct {
	http    *http.Client
	baseURL string
	key     string
}

// New returns a Client for the project at baseURL (for example
// https://xyz.supabase.co).
func New(httpClient *http.Client, baseURL, key string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{http: httpClient, baseURL: strings.TrimRight(baseURL, "/"), key: key}
}

// HashedName returns the md5 hex digest of content followed by the extension
// of filename. Identical files always map to the same stored name.
func HashedName(filename string, content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:]) + path.Ext(filename)
}

// PublicURL returns the public URL of objectPath in bucket. It does not check
// that the object exists.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + strings.TrimLeft(objectPath, "/")
}

// Upload stores body at objectPath in bucket. With upsert an existing object
// is overwritten; without it the upload fails if the object exists.
func (c *Client) Upload(ctx context.Context, bucket, objectPath string, body []byte, contentType string, upsert bool) error {
	u := c.baseURL + "/storage/v1/object/" + bucket + "/" + strings.TrimLeft(objectPath, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("storage.Client.Upload: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", contentType)
	if upsert {
		req.Header.Set("x-upsert", "true")
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("storage.Client.Upload %s: %w", objectPath, err)
	}
	return nil
}

type listRequest struct {
	Prefix string     `json:"prefix"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	SortBy listSortBy `json:"sortBy"`
}

type listSortBy struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

// List returns one page of objects under prefix, ordered by name.
func (c *Client) List(ctx context.Context, bucket, prefix string, limit, offset int) ([]Object, error) {
	body, err := json.Marshal(listRequest{
		Prefix: prefix,
		Limit:  limit,
		Offset: offset,
		SortBy: listSortBy{Column: "name", Order: "asc"},
	})
	if err != nil {
		return nil, fmt.Errorf("storage.Client.List: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/storage/v1/object/list/"+bucket, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("storage.Client.List: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	objects := []Object{}
	if err := c.do(req, &objects); err != nil {
		return nil, fmt.Errorf("storage.Client.List: %w", err)
	}
	return objects, nil
}

// ListAll pages through every object under prefix, pageSize at a time,
// dropping folder placeholders and unnamed entries.
func (c *Client) ListAll(ctx context.Context, bucket, prefix string, pageSize int) ([]Object, error) {
	var all []Object
	for offset := 0; ; offset += pageSize {
		page, err := c.List(ctx, bucket, prefix, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, o := range page {
			if o.Name == "" || o.Name == PlaceholderName {
				continue
			}
			all = append(all, o)
		}
		if len(page) < pageSize {
			return all, nil
		}
	}
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("apikey", c.key)
}

// do sends req and decodes a JSON body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}

// StatusError is a non-2xx answer from the storage API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storage answered %d: %s", e.Code, e.Body)
}

// Unwrap makes every StatusError match domain.ErrUpstream.
func (e *StatusError) Unwrap() error { return domain.ErrUpstream }

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}
