package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"ffc/zonectl/internal/dns/domain"

	"github.com/google/go-cmp/cmp"
)

// --- Test helpers ---

// newTestCloudflareProvider creates a CloudflareProvider pointed at the given test server.
func newTestCloudflareProvider(t *testing.T, serverURL string) *CloudflareProvider {
	t.Helper()
	p := NewCloudflareProvider("test-token")
	p.baseURL = serverURL
	return p
}

// cfSuccessEnvelope returns a Cloudflare success envelope wrapping the given result.
func cfSuccessEnvelope(result any) map[string]any {
	return map[string]any{
		"success":  true,
		"errors":   []any{},
		"messages": []any{},
		"result":   result,
	}
}

// cfSuccessListEnvelope returns a Cloudflare success list envelope with pagination.
func cfSuccessListEnvelope(result []any, page, totalPages, totalCount int) map[string]any {
	return map[string]any{
		"success":  true,
		"errors":   []any{},
		"messages": []any{},
		"result":   result,
		"result_info": map[string]any{
			"page":        page,
			"per_page":    cloudflareRecordPageSize,
			"total_pages": totalPages,
			"count":       len(result),
			"total_count": totalCount,
		},
	}
}

// cfErrorEnvelope returns a Cloudflare error envelope.
func cfErrorEnvelope(code int, message string) map[string]any {
	return map[string]any{
		"success":  false,
		"errors":   []any{map[string]any{"code": code, "message": message}},
		"messages": []any{},
		"result":   nil,
	}
}

// testCFZoneJSON returns a sample Cloudflare zone object.
func testCFZoneJSON(id, name, status string) map[string]any {
	return map[string]any{
		"id":         id,
		"name":       name,
		"status":     status,
		"created_on": "2024-01-01T00:00:00.000000Z",
	}
}

// testCFRecordJSON returns a sample Cloudflare DNS record object.
func testCFRecordJSON(id, name, typ, content string, ttl int, priority *int, comment string) map[string]any {
	rec := map[string]any{
		"id":          id,
		"zone_id":     "zone-123",
		"zone_name":   "example.com",
		"name":        name,
		"type":        typ,
		"content":     content,
		"ttl":         ttl,
		"comment":     comment,
		"modified_on": "2024-06-01T00:00:00.000000Z",
	}
	if priority != nil {
		rec["priority"] = *priority
	}
	return rec
}

// newCFRouter creates a httptest.Server routing requests by "METHOD /path"
// keys. Query strings are ignored for matching; handlers inspect them via
// r.URL.Query when a test cares.
func newCFRouter(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(cfErrorEnvelope(0, fmt.Sprintf("no handler for %s %s", r.Method, r.URL.String())))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// --- ResolveZoneID tests ---

func TestCloudflare_ResolveZoneID_HappyPath(t *testing.T) {
	var capturedQuery map[string]string
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones": func(w http.ResponseWriter, r *http.Request) {
			capturedQuery = map[string]string{
				"name":     r.URL.Query().Get("name"),
				"per_page": r.URL.Query().Get("per_page"),
			}
			json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{
				testCFZoneJSON("zone-123", "example.com", "active"),
			}, 1, 1, 1))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	id, err := p.ResolveZoneID(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != "zone-123" {
		t.Errorf("zone ID = %q, want %q", id, "zone-123")
	}

	// The lookup must filter by exact name server-side, one result max.
	want := map[string]string{"name": "example.com", "per_page": "1"}
	if diff := cmp.Diff(want, capturedQuery); diff != "" {
		t.Errorf("query params mismatch (-want +got):\n%s", diff)
	}
}

func TestCloudflare_ResolveZoneID_NotFound(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{}, 1, 1, 0))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.ResolveZoneID(context.Background(), "notexist.com")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestCloudflare_ResolveZoneID_Unauthorized(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(cfErrorEnvelope(9109, "Invalid access token"))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.ResolveZoneID(context.Background(), "example.com")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
}

// --- ListZones tests ---

func TestCloudflare_ListZones_HappyPath(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{
				testCFZoneJSON("zone-1", "example.com", "active"),
				testCFZoneJSON("zone-2", "another.io", "pending"),
			}, 1, 1, 2))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	zones, err := p.ListZones(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []domain.Zone{
		{ID: "zone-1", Name: "example.com", Status: "active", CreatedOn: "2024-01-01T00:00:00.000000Z"},
		{ID: "zone-2", Name: "another.io", Status: "pending", CreatedOn: "2024-01-01T00:00:00.000000Z"},
	}

	if diff := cmp.Diff(want, zones); diff != "" {
		t.Errorf("ListZones mismatch (-want +got):\n%s", diff)
	}
}

func TestCloudflare_ListZones_Pagination(t *testing.T) {
	callCount := 0
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones": func(w http.ResponseWriter, r *http.Request) {
			callCount++
			if callCount == 1 {
				json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{
					testCFZoneJSON("zone-1", "example.com", "active"),
				}, 1, 2, 2))
			} else {
				json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{
					testCFZoneJSON("zone-2", "another.io", "active"),
				}, 2, 2, 2))
			}
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	zones, err := p.ListZones(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}
	if callCount != 2 {
		t.Errorf("expected 2 API calls for pagination, got %d", callCount)
	}
}

func TestCloudflare_ListZones_EmptyAccount(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{}, 1, 0, 0))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	zones, err := p.ListZones(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(zones) != 0 {
		t.Errorf("expected 0 zones, got %d", len(zones))
	}
}

// --- ListRecords tests ---

func TestCloudflare_ListRecords_HappyPath(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
			mx := testCFRecordJSON("rec-3", "example.com", "MX", "mail.example.com", 3600, domain.IntPtr(0), "mail server")
			www := testCFRecordJSON("rec-2", "www.example.com", "CNAME", "example.com", 300, nil, "")
			www["proxied"] = true
			json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{
				testCFRecordJSON("rec-1", "example.com", "A", "1.2.3.4", 300, nil, ""),
				www,
				mx,
			}, 1, 1, 3))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	records, err := p.ListRecords(context.Background(), "zone-123", domain.RecordFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0].ID != "rec-1" {
		t.Errorf("records[0].ID = %q, want %q", records[0].ID, "rec-1")
	}
	if records[0].ZoneName != "example.com" {
		t.Errorf("records[0].ZoneName = %q, want %q", records[0].ZoneName, "example.com")
	}
	if !records[1].Proxied {
		t.Error("records[1].Proxied = false, want true")
	}
	// MX preference 0 is a real value, not an omitted field.
	if records[2].Priority != 0 {
		t.Errorf("records[2].Priority = %d, want 0", records[2].Priority)
	}
	if records[2].Comment != "mail server" {
		t.Errorf("records[2].Comment = %q, want %q", records[2].Comment, "mail server")
	}
}

func TestCloudflare_ListRecords_FilterForwarded(t *testing.T) {
	var capturedQuery map[string]string
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
			capturedQuery = map[string]string{
				"type": r.URL.Query().Get("type"),
				"name": r.URL.Query().Get("name"),
			}
			json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{}, 1, 1, 0))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.ListRecords(context.Background(), "zone-123", domain.RecordFilter{
		Type: domain.RecordTypeTXT,
		Name: "_dmarc.example.com",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := map[string]string{"type": "TXT", "name": "_dmarc.example.com"}
	if diff := cmp.Diff(want, capturedQuery); diff != "" {
		t.Errorf("filter query mismatch (-want +got):\n%s", diff)
	}
}

// TestCloudflare_ListRecords_PaginationCompleteness serves record sets
// around the page-size boundaries and checks that every record comes
// back exactly once, in provider order, with the expected call count.
func TestCloudflare_ListRecords_PaginationCompleteness(t *testing.T) {
	pageSize := cloudflareRecordPageSize
	for _, total := range []int{0, 1, pageSize, pageSize + 1, 10 * pageSize} {
		t.Run(fmt.Sprintf("%d_records", total), func(t *testing.T) {
			totalPages := (total + pageSize - 1) / pageSize
			callCount := 0
			srv := newCFRouter(t, map[string]http.HandlerFunc{
				"GET /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
					callCount++
					page, err := strconv.Atoi(r.URL.Query().Get("page"))
					if err != nil || page < 1 {
						t.Errorf("bad page param %q", r.URL.Query().Get("page"))
						page = 1
					}
					start := (page - 1) * pageSize
					end := min(start+pageSize, total)
					var result []any
					for i := start; i < end; i++ {
						result = append(result, testCFRecordJSON(
							fmt.Sprintf("rec-%04d", i), "example.com", "A", fmt.Sprintf("10.0.%d.%d", i/256, i%256), 300, nil, ""))
					}
					if result == nil {
						result = []any{}
					}
					json.NewEncoder(w).Encode(cfSuccessListEnvelope(result, page, totalPages, total))
				},
			})

			p := newTestCloudflareProvider(t, srv.URL)

			records, err := p.ListRecords(context.Background(), "zone-123", domain.RecordFilter{})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(records) != total {
				t.Fatalf("got %d records, want %d", len(records), total)
			}
			for i, rec := range records {
				if want := fmt.Sprintf("rec-%04d", i); rec.ID != want {
					t.Fatalf("records[%d].ID = %q, want %q (order or duplication bug)", i, rec.ID, want)
				}
			}

			wantCalls := max(totalPages, 1)
			if callCount != wantCalls {
				t.Errorf("API calls = %d, want %d", callCount, wantCalls)
			}
		})
	}
}

func TestCloudflare_ListRecords_RateLimited(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(cfErrorEnvelope(971, "Please wait and consider throttling your request speed"))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.ListRecords(context.Background(), "zone-123", domain.RecordFilter{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got: %v", err)
	}
	if !domain.IsTransient(err) {
		t.Errorf("rate limit errors should be transient, got: %v", err)
	}
}

// --- GetRecord tests ---

func TestCloudflare_GetRecord_HappyPath(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones/zone-123/dns_records/rec-1": func(w http.ResponseWriter, r *http.Request) {
			rec := testCFRecordJSON("rec-1", "example.com", "A", "1.2.3.4", 300, nil, "test note")
			rec["proxied"] = true
			json.NewEncoder(w).Encode(cfSuccessEnvelope(rec))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	rec, err := p.GetRecord(context.Background(), "zone-123", "rec-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := &domain.Record{
		ID:         "rec-1",
		ZoneID:     "zone-123",
		ZoneName:   "example.com",
		Name:       "example.com",
		Type:       domain.RecordTypeA,
		Content:    "1.2.3.4",
		TTL:        300,
		Priority:   0,
		Proxied:    true,
		Comment:    "test note",
		ModifiedOn: "2024-06-01T00:00:00.000000Z",
	}

	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("GetRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestCloudflare_GetRecord_NotFound(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones/zone-123/dns_records/rec-999": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(cfErrorEnvelope(81044, "Record not found"))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.GetRecord(context.Background(), "zone-123", "rec-999")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

// --- CreateRecord tests ---

func TestCloudflare_CreateRecord_HappyPath(t *testing.T) {
	var capturedBody cfRecordBody
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"POST /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&capturedBody)
			json.NewEncoder(w).Encode(cfSuccessEnvelope(
				testCFRecordJSON("rec-new", "www.example.com", "A", "5.6.7.8", 300, nil, ""),
			))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	rec, err := p.CreateRecord(context.Background(), "zone-123", domain.RecordSpec{
		Type:    domain.RecordTypeA,
		Name:    "www.example.com",
		Content: "5.6.7.8",
		TTL:     300,
		Proxied: domain.BoolPtr(false),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if rec.ID != "rec-new" {
		t.Errorf("rec.ID = %q, want %q", rec.ID, "rec-new")
	}
	if capturedBody.Name != "www.example.com" {
		t.Errorf("request body name = %q, want %q", capturedBody.Name, "www.example.com")
	}
	if capturedBody.Proxied == nil || *capturedBody.Proxied {
		t.Errorf("request body proxied = %v, want explicit false", capturedBody.Proxied)
	}
}

// Creating an MX record with preference 0 must serialize priority: 0 in
// the request. An omitted priority makes Cloudflare reject the MX create.
func TestCloudflare_CreateRecord_PriorityZeroSent(t *testing.T) {
	var rawBody map[string]any
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"POST /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&rawBody)
			json.NewEncoder(w).Encode(cfSuccessEnvelope(
				testCFRecordJSON("rec-mx", "example.com", "MX", "mail.example.com", 300, domain.IntPtr(0), ""),
			))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	rec, err := p.CreateRecord(context.Background(), "zone-123", domain.RecordSpec{
		Type:     domain.RecordTypeMX,
		Name:     "example.com",
		Content:  "mail.example.com",
		TTL:      300,
		Priority: domain.IntPtr(0),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	prio, present := rawBody["priority"]
	if !present {
		t.Fatal("priority missing from request body, want explicit 0")
	}
	if prio != float64(0) {
		t.Errorf("request body priority = %v, want 0", prio)
	}
	if rec.Priority != 0 {
		t.Errorf("rec.Priority = %d, want 0", rec.Priority)
	}
}

func TestCloudflare_CreateRecord_Conflict(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"POST /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(cfErrorEnvelope(81057, "Record already exists"))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.CreateRecord(context.Background(), "zone-123", domain.RecordSpec{
		Type:    domain.RecordTypeA,
		Name:    "example.com",
		Content: "1.1.1.1",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got: %v", err)
	}
}

func TestCloudflare_CreateRecord_ValidationRejected(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"POST /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(cfErrorEnvelope(9005, "Content for A record is invalid. Must be a valid IPv4 address"))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.CreateRecord(context.Background(), "zone-123", domain.RecordSpec{
		Type:    domain.RecordTypeA,
		Name:    "example.com",
		Content: "not-an-ip",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
}

// --- UpdateRecord tests ---

func TestCloudflare_UpdateRecord_FullReplace(t *testing.T) {
	var capturedMethod string
	var capturedBody cfRecordBody
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"PUT /zones/zone-123/dns_records/rec-1": func(w http.ResponseWriter, r *http.Request) {
			capturedMethod = r.Method
			json.NewDecoder(r.Body).Decode(&capturedBody)
			json.NewEncoder(w).Encode(cfSuccessEnvelope(
				testCFRecordJSON("rec-1", "example.com", "A", "9.9.9.9", 1800, nil, ""),
			))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	rec, err := p.UpdateRecord(context.Background(), "zone-123", "rec-1", domain.RecordSpec{
		Type:    domain.RecordTypeA,
		Name:    "example.com",
		Content: "9.9.9.9",
		TTL:     1800,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Replacement semantics: the whole record travels in one PUT.
	if capturedMethod != http.MethodPut {
		t.Errorf("expected PUT method, got %s", capturedMethod)
	}
	if capturedBody.Content != "9.9.9.9" || capturedBody.TTL != 1800 || capturedBody.Name != "example.com" {
		t.Errorf("request body = %+v, want full record fields", capturedBody)
	}
	if rec.Content != "9.9.9.9" {
		t.Errorf("rec.Content = %q, want %q", rec.Content, "9.9.9.9")
	}
}

func TestCloudflare_UpdateRecord_NotFound(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"PUT /zones/zone-123/dns_records/rec-999": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(cfErrorEnvelope(81044, "Record not found"))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.UpdateRecord(context.Background(), "zone-123", "rec-999", domain.RecordSpec{
		Type:    domain.RecordTypeA,
		Name:    "example.com",
		Content: "1.1.1.1",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

// --- DeleteRecord tests ---

func TestCloudflare_DeleteRecord_HappyPath(t *testing.T) {
	var capturedPath string
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"DELETE /zones/zone-123/dns_records/rec-1": func(w http.ResponseWriter, r *http.Request) {
			capturedPath = r.URL.Path
			json.NewEncoder(w).Encode(cfSuccessEnvelope(
				map[string]any{"id": "rec-1"},
			))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	err := p.DeleteRecord(context.Background(), "zone-123", "rec-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if capturedPath != "/zones/zone-123/dns_records/rec-1" {
		t.Errorf("expected path /zones/zone-123/dns_records/rec-1, got %s", capturedPath)
	}
}

func TestCloudflare_DeleteRecord_NotFound(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"DELETE /zones/zone-123/dns_records/rec-999": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(cfErrorEnvelope(81044, "Record not found"))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	err := p.DeleteRecord(context.Background(), "zone-123", "rec-999")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

// --- Failure normalization tests ---

// Gateways answer 5xx with HTML bodies, so the transient classification
// must not depend on decoding an envelope.
func TestCloudflare_ServerErrorIsTransient(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones/zone-123/dns_records": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "<html>502 Bad Gateway</html>")
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.ListRecords(context.Background(), "zone-123", domain.RecordFilter{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrTransient) {
		t.Errorf("expected ErrTransient, got: %v", err)
	}
}

func TestCloudflare_NetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := newTestCloudflareProvider(t, url)

	_, err := p.ListZones(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrTransient) {
		t.Errorf("expected ErrTransient, got: %v", err)
	}
}

// Cloudflare can report failure in the envelope while the HTTP status
// stays 200; the success flag alone must trigger sentinel mapping.
func TestCloudflare_EnvelopeFailureWithOKStatus(t *testing.T) {
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones/zone-123/dns_records/rec-1": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(cfErrorEnvelope(81044, "Record not found"))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	_, err := p.GetRecord(context.Background(), "zone-123", "rec-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

// --- Auth header tests ---

func TestCloudflare_BearerTokenSent(t *testing.T) {
	var capturedAuth string
	srv := newCFRouter(t, map[string]http.HandlerFunc{
		"GET /zones": func(w http.ResponseWriter, r *http.Request) {
			capturedAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(cfSuccessListEnvelope([]any{}, 1, 0, 0))
		},
	})

	p := newTestCloudflareProvider(t, srv.URL)

	p.ListZones(context.Background())

	if capturedAuth != "Bearer test-token" {
		t.Errorf("expected Authorization = %q, got %q", "Bearer test-token", capturedAuth)
	}
}
