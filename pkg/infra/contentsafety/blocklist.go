package contentsafety

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateOrUpdateBlocklist creates a named blocklist, or updates its
// description if it already exists. The operation is a PATCH and idempotent.
func (c *Client) CreateOrUpdateBlocklist(ctx context.Context, name, description string) (*Blocklist, error) {
	rawURL := fmt.Sprintf("%s/contentsafety/text/blocklists/%s?api-version=%s",
		c.cfg.Endpoint, url.PathEscape(name), url.QueryEscape(c.cfg.APIVersion))

	in := struct {
		Description string `json:"description,omitempty"`
	}{Description: description}

	var out Blocklist
	if err := c.do(ctx, http.MethodPatch, rawURL, "blocklist_create", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddOrUpdateItems upserts items into a named blocklist. Re-adding an
// existing text is not an error; the service keeps a single entry per text.
func (c *Client) AddOrUpdateItems(ctx context.Context, name string, items []BlocklistItem) (*AddOrUpdateItemsResponse, error) {
	rawURL := fmt.Sprintf("%s/contentsafety/text/blocklists/%s:addOrUpdateBlocklistItems?api-version=%s",
		c.cfg.Endpoint, url.PathEscape(name), url.QueryEscape(c.cfg.APIVersion))

	var out AddOrUpdateItemsResponse
	if err := c.do(ctx, http.MethodPost, rawURL, "blocklist_upsert", addOrUpdateItemsRequest{BlocklistItems: items}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
