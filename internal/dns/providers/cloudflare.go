package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ffc/zonectl/internal/dns/domain"
)

const (
	cloudflareBaseURL = "https://api.cloudflare.com/client/v4"
	cloudflareTimeout = 30 * time.Second

	// Page sizes for list endpoints. Cloudflare caps dns_records at 100
	// per page and zones at 50.
	cloudflareRecordPageSize = 100
	cloudflareZonePageSize   = 50
)

// Compile-time check that CloudflareProvider satisfies domain.Provider.
var _ domain.Provider = (*CloudflareProvider)(nil)

// CloudflareProvider implements domain.Provider against the Cloudflare
// API v4. It authenticates via a scoped API Token (not a Global API Key);
// the token needs Zone:Read and DNS:Edit permissions. It speaks to the
// API with a plain HTTP client rather than the official SDK so the error
// normalization and pagination behavior stay explicit and testable.
//
// Cloudflare signals failure two ways at once: the HTTP status and a
// `success` flag inside the response envelope. Both are checked on every
// call and collapsed into the domain sentinel taxonomy; callers never see
// a raw status code.
type CloudflareProvider struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewCloudflareProvider creates a CloudflareProvider with the given API token.
func NewCloudflareProvider(token string) *CloudflareProvider {
	return &CloudflareProvider{
		token:   token,
		baseURL: cloudflareBaseURL,
		client:  &http.Client{Timeout: cloudflareTimeout},
	}
}

// RegisterCloudflare registers the Cloudflare provider factory with the
// DNS registry.
func RegisterCloudflare() {
	Register("cloudflare", func(cfg Config) (domain.Provider, error) {
		if strings.TrimSpace(cfg.Token) == "" {
			return nil, fmt.Errorf("cloudflare: %w: empty API token", domain.ErrUnauthorized)
		}
		p := NewCloudflareProvider(cfg.Token)
		if cfg.BaseURL != "" {
			p.baseURL = strings.TrimRight(cfg.BaseURL, "/")
		}
		return p, nil
	})
}

// GetDisplayName returns the human-readable provider name.
func (c *CloudflareProvider) GetDisplayName() string {
	return "Cloudflare"
}

// --- API request/response types ---

// cfEnvelope is the standard Cloudflare API response wrapper.
type cfEnvelope[T any] struct {
	Success  bool      `json:"success"`
	Errors   []cfError `json:"errors"`
	Result   T         `json:"result"`
	Messages []cfError `json:"messages,omitempty"`
}

// cfError represents a single Cloudflare API error.
type cfError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// cfResultInfo holds pagination info from Cloudflare list responses.
type cfResultInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
}

// cfListEnvelope extends the envelope with pagination info.
type cfListEnvelope[T any] struct {
	Success    bool         `json:"success"`
	Errors     []cfError    `json:"errors"`
	Result     []T          `json:"result"`
	ResultInfo cfResultInfo `json:"result_info"`
}

// cfZone is the Cloudflare zone object.
type cfZone struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedOn string `json:"created_on"`
}

// cfDNSRecord is the Cloudflare DNS record object.
type cfDNSRecord struct {
	ID         string `json:"id"`
	ZoneID     string `json:"zone_id"`
	ZoneName   string `json:"zone_name"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	TTL        int    `json:"ttl"`
	Priority   *int   `json:"priority,omitempty"`
	Proxied    *bool  `json:"proxied,omitempty"`
	Comment    string `json:"comment"`
	ModifiedOn string `json:"modified_on"`
}

// cfRecordBody is the request body for creating (POST) or replacing (PUT)
// a DNS record. PUT is a full replace: every field sent is authoritative.
type cfRecordBody struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	TTL      int    `json:"ttl,omitempty"`
	Priority *int   `json:"priority,omitempty"`
	Proxied  *bool  `json:"proxied,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// --- HTTP helpers ---

// envelopeError collapses a Cloudflare response's dual failure signal
// (HTTP status plus embedded success flag) into a domain sentinel.
func envelopeError(success bool, errors []cfError, httpStatus int) error {
	if success {
		return nil
	}

	// Map HTTP status codes to domain sentinels first.
	switch {
	case httpStatus == http.StatusUnauthorized || httpStatus == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, cfErrorString(errors))
	case httpStatus == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, cfErrorString(errors))
	case httpStatus == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, cfErrorString(errors))
	case httpStatus == http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, cfErrorString(errors))
	case httpStatus >= 500:
		return fmt.Errorf("%w: %s", domain.ErrTransient, cfErrorString(errors))
	}

	// Fall back to inspecting the API error codes/messages.
	for _, e := range errors {
		msg := strings.ToLower(e.Message)
		switch {
		case e.Code == 9109 || e.Code == 10000 || strings.Contains(msg, "authentication"):
			return fmt.Errorf("%w: %s", domain.ErrUnauthorized, e.Message)
		case e.Code == 81044 || strings.Contains(msg, "not found"):
			return fmt.Errorf("%w: %s", domain.ErrNotFound, e.Message)
		case e.Code == 81053 || e.Code == 81057 || strings.Contains(msg, "already exists"):
			return fmt.Errorf("%w: %s", domain.ErrConflict, e.Message)
		case e.Code == 1004 || e.Code == 9005 || e.Code == 9041 || strings.Contains(msg, "invalid"):
			return fmt.Errorf("%w: %s", domain.ErrValidation, e.Message)
		}
	}

	if httpStatus == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", domain.ErrValidation, cfErrorString(errors))
	}

	return fmt.Errorf("cloudflare: %s", cfErrorString(errors))
}

// cfErrorString joins multiple Cloudflare errors into a single string.
func cfErrorString(errors []cfError) string {
	if len(errors) == 0 {
		return "unknown error"
	}
	msgs := make([]string, 0, len(errors))
	for _, e := range errors {
		msgs = append(msgs, fmt.Sprintf("[%d] %s", e.Code, e.Message))
	}
	return strings.Join(msgs, "; ")
}

// doJSONWithStatus issues one API call and decodes the response into out,
// returning the HTTP status for error mapping. Network failures and 5xx
// responses surface as ErrTransient before any decode is attempted, since
// gateways answer those with non-JSON bodies.
func (c *CloudflareProvider) doJSONWithStatus(ctx context.Context, method, path string, body any, out any) (int, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("cloudflare: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("cloudflare: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, fmt.Errorf("%w: cloudflare returned HTTP %d", domain.ErrTransient, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("cloudflare: failed to decode response: %w", err)
	}

	return resp.StatusCode, nil
}

// --- Provider implementation ---

// ResolveZoneID looks up the zone ID for an exact domain name.
func (c *CloudflareProvider) ResolveZoneID(ctx context.Context, zoneName string) (string, error) {
	q := url.Values{}
	q.Set("name", zoneName)
	q.Set("per_page", "1")

	var out cfListEnvelope[cfZone]
	status, err := c.doJSONWithStatus(ctx, http.MethodGet, "/zones?"+q.Encode(), nil, &out)
	if err != nil {
		return "", fmt.Errorf("failed to look up zone %q: %w", zoneName, err)
	}
	if apiErr := envelopeError(out.Success, out.Errors, status); apiErr != nil {
		return "", fmt.Errorf("failed to look up zone %q: %w", zoneName, apiErr)
	}

	if len(out.Result) == 0 {
		return "", fmt.Errorf("zone %q: %w", zoneName, domain.ErrNotFound)
	}

	return out.Result[0].ID, nil
}

// ListZones returns all zones in the account, across all pages.
func (c *CloudflareProvider) ListZones(ctx context.Context) ([]domain.Zone, error) {
	var zones []domain.Zone
	page := 1

	for {
		path := fmt.Sprintf("/zones?page=%d&per_page=%d", page, cloudflareZonePageSize)
		var out cfListEnvelope[cfZone]
		status, err := c.doJSONWithStatus(ctx, http.MethodGet, path, nil, &out)
		if err != nil {
			return nil, fmt.Errorf("failed to list zones: %w", err)
		}
		if apiErr := envelopeError(out.Success, out.Errors, status); apiErr != nil {
			return nil, fmt.Errorf("failed to list zones: %w", apiErr)
		}

		for _, z := range out.Result {
			zones = append(zones, domain.Zone{
				ID:        z.ID,
				Name:      z.Name,
				Status:    z.Status,
				CreatedOn: z.CreatedOn,
			})
		}

		if page >= out.ResultInfo.TotalPages {
			break
		}
		page++
	}

	return zones, nil
}

// ListRecords returns the zone's records matching filter across all
// pages, preserving the provider's ordering.
func (c *CloudflareProvider) ListRecords(ctx context.Context, zoneID string, filter domain.RecordFilter) ([]domain.Record, error) {
	var records []domain.Record
	page := 1

	for {
		q := url.Values{}
		q.Set("page", fmt.Sprint(page))
		q.Set("per_page", fmt.Sprint(cloudflareRecordPageSize))
		if filter.Type != "" {
			q.Set("type", string(filter.Type))
		}
		if filter.Name != "" {
			q.Set("name", filter.Name)
		}

		path := fmt.Sprintf("/zones/%s/dns_records?%s", zoneID, q.Encode())
		var out cfListEnvelope[cfDNSRecord]
		status, err := c.doJSONWithStatus(ctx, http.MethodGet, path, nil, &out)
		if err != nil {
			return nil, fmt.Errorf("failed to list records for zone %s: %w", zoneID, err)
		}
		if apiErr := envelopeError(out.Success, out.Errors, status); apiErr != nil {
			return nil, fmt.Errorf("failed to list records for zone %s: %w", zoneID, apiErr)
		}

		for _, r := range out.Result {
			records = append(records, cfToRecord(r))
		}

		if page >= out.ResultInfo.TotalPages {
			break
		}
		page++
	}

	return records, nil
}

// GetRecord returns a single DNS record by its ID.
func (c *CloudflareProvider) GetRecord(ctx context.Context, zoneID string, id string) (*domain.Record, error) {
	path := fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, id)
	var out cfEnvelope[cfDNSRecord]
	status, err := c.doJSONWithStatus(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", id, err)
	}
	if apiErr := envelopeError(out.Success, out.Errors, status); apiErr != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", id, apiErr)
	}

	rec := cfToRecord(out.Result)
	return &rec, nil
}

// CreateRecord creates a record from spec. spec.Name must already be
// fully qualified.
func (c *CloudflareProvider) CreateRecord(ctx context.Context, zoneID string, spec domain.RecordSpec) (*domain.Record, error) {
	path := fmt.Sprintf("/zones/%s/dns_records", zoneID)
	var out cfEnvelope[cfDNSRecord]
	status, err := c.doJSONWithStatus(ctx, http.MethodPost, path, recordBody(spec), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to create record %s: %w", spec, err)
	}
	if apiErr := envelopeError(out.Success, out.Errors, status); apiErr != nil {
		return nil, fmt.Errorf("failed to create record %s: %w", spec, apiErr)
	}

	rec := cfToRecord(out.Result)
	return &rec, nil
}

// UpdateRecord replaces the record with spec via PUT. Full replace: all
// fields in the body are authoritative for the record afterward.
func (c *CloudflareProvider) UpdateRecord(ctx context.Context, zoneID string, id string, spec domain.RecordSpec) (*domain.Record, error) {
	path := fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, id)
	var out cfEnvelope[cfDNSRecord]
	status, err := c.doJSONWithStatus(ctx, http.MethodPut, path, recordBody(spec), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to update record %s: %w", id, err)
	}
	if apiErr := envelopeError(out.Success, out.Errors, status); apiErr != nil {
		return nil, fmt.Errorf("failed to update record %s: %w", id, apiErr)
	}

	rec := cfToRecord(out.Result)
	return &rec, nil
}

// DeleteRecord deletes a DNS record by its ID.
func (c *CloudflareProvider) DeleteRecord(ctx context.Context, zoneID string, id string) error {
	path := fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, id)
	var out cfEnvelope[struct {
		ID string `json:"id"`
	}]
	status, err := c.doJSONWithStatus(ctx, http.MethodDelete, path, nil, &out)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	if apiErr := envelopeError(out.Success, out.Errors, status); apiErr != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, apiErr)
	}

	return nil
}

// --- Conversion helpers ---

// recordBody builds the wire payload for a create or full-replace update.
// The priority pointer is forwarded as-is so an explicit 0 survives (MX
// preference 0 is valid and common for mail routing).
func recordBody(spec domain.RecordSpec) cfRecordBody {
	return cfRecordBody{
		Type:     string(spec.Type),
		Name:     spec.Name,
		Content:  spec.Content,
		TTL:      spec.TTL,
		Priority: spec.Priority,
		Proxied:  spec.Proxied,
		Comment:  spec.Comment,
	}
}

// cfToRecord converts a Cloudflare API record to a domain.Record.
func cfToRecord(r cfDNSRecord) domain.Record {
	prio := 0
	if r.Priority != nil {
		prio = *r.Priority
	}
	proxied := false
	if r.Proxied != nil {
		proxied = *r.Proxied
	}

	return domain.Record{
		ID:         r.ID,
		ZoneID:     r.ZoneID,
		ZoneName:   r.ZoneName,
		Name:       r.Name,
		Type:       domain.RecordType(r.Type),
		Content:    r.Content,
		TTL:        r.TTL,
		Priority:   prio,
		Proxied:    proxied,
		Comment:    r.Comment,
		ModifiedOn: r.ModifiedOn,
	}
}
