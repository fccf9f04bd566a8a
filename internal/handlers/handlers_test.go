package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ticketpass/internal/auth"
	"ticketpass/internal/identity"
	"ticketpass/internal/middleware"
	"ticketpass/internal/models"
)

var testSecret = []byte("handler-test-secret")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// Mock services with per-test function fields.

type mockIssuanceService struct {
	createEventFn func(caller identity.Principal, req *models.EventCreateRequest) (*models.Event, error)
	mintTicketFn  func(caller identity.Principal, eventID int64) (*models.Ticket, error)
}

func (m *mockIssuanceService) CreateEvent(caller identity.Principal, req *models.EventCreateRequest) (*models.Event, error) {
	return m.createEventFn(caller, req)
}

func (m *mockIssuanceService) MintTicket(caller identity.Principal, eventID int64) (*models.Ticket, error) {
	return m.mintTicketFn(caller, eventID)
}

type mockValidationService struct {
	validateTicketFn func(caller identity.Principal, ticketID int64, qrCode string) (bool, error)
}

func (m *mockValidationService) ValidateTicket(caller identity.Principal, ticketID int64, qrCode string) (bool, error) {
	return m.validateTicketFn(caller, ticketID, qrCode)
}

type mockQueryService struct {
	getEventFn   func(id int64) (*models.Event, error)
	listEventsFn func() ([]*models.Event, error)
	getTicketFn  func(id int64) (*models.Ticket, error)
	myTicketsFn  func(caller identity.Principal) ([]*models.Ticket, error)
}

func (m *mockQueryService) GetEvent(id int64) (*models.Event, error) { return m.getEventFn(id) }
func (m *mockQueryService) ListEvents() ([]*models.Event, error)    { return m.listEventsFn() }
func (m *mockQueryService) GetTicket(id int64) (*models.Ticket, error) {
	return m.getTicketFn(id)
}
func (m *mockQueryService) MyTickets(caller identity.Principal) ([]*models.Ticket, error) {
	return m.myTicketsFn(caller)
}

func newTestRouter(issuance *mockIssuanceService, validation *mockValidationService, query *mockQueryService) *gin.Engine {
	if issuance == nil {
		issuance = &mockIssuanceService{}
	}
	if validation == nil {
		validation = &mockValidationService{}
	}
	if query == nil {
		query = &mockQueryService{}
	}
	identityMiddleware := middleware.NewIdentityMiddleware(testSecret)
	return NewRouter(issuance, validation, query, identityMiddleware, []string{"http://localhost:5173"})
}

func bearerToken(t *testing.T, principal identity.Principal) string {
	t.Helper()
	token, err := auth.IssueToken(testSecret, principal, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	return "Bearer " + token
}

func doRequest(router *gin.Engine, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func sampleEvent(id int64, organizer identity.Principal) *models.Event {
	return &models.Event{
		ID:           id,
		Organizer:    organizer,
		Name:         "Go Conference",
		Description:  "A conference about Go",
		Venue:        "Convention Center",
		Date:         "2026-10-01",
		TicketPrice:  2500,
		TotalTickets: 100,
		ImageURL:     "https://example.com/banner.png",
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func sampleTicket(id, eventID int64, owner identity.Principal) *models.Ticket {
	return &models.Ticket{
		ID:           id,
		EventID:      eventID,
		Owner:        owner,
		PurchaseDate: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		QRCode:       "TKT-abc123",
	}
}

func TestCreateEvent(t *testing.T) {
	organizer := identity.Principal("organizer-1")
	body := gin.H{
		"name":          "Go Conference",
		"description":   "A conference about Go",
		"venue":         "Convention Center",
		"date":          "2026-10-01",
		"ticket_price":  2500,
		"total_tickets": 100,
		"image_url":     "https://example.com/banner.png",
	}

	t.Run("creates event for authenticated caller", func(t *testing.T) {
		issuance := &mockIssuanceService{
			createEventFn: func(caller identity.Principal, req *models.EventCreateRequest) (*models.Event, error) {
				if caller != organizer {
					t.Errorf("caller = %q, want %q", caller, organizer)
				}
				return sampleEvent(1, caller), nil
			},
		}
		router := newTestRouter(issuance, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/events", bearerToken(t, organizer), body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
		}
		var event models.Event
		if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if event.ID != 1 || event.Organizer != organizer {
			t.Errorf("event = %+v", event)
		}
	})

	t.Run("rejects missing token", func(t *testing.T) {
		router := newTestRouter(nil, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/events", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("rejects bad token", func(t *testing.T) {
		router := newTestRouter(nil, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/events", "Bearer not-a-token", body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("maps invalid input to 400", func(t *testing.T) {
		issuance := &mockIssuanceService{
			createEventFn: func(identity.Principal, *models.EventCreateRequest) (*models.Event, error) {
				return nil, fmt.Errorf("%w: event name is required", models.ErrInvalidInput)
			},
		}
		router := newTestRouter(issuance, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/events", bearerToken(t, organizer), body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if resp := decodeError(t, rec); resp.Code != "invalid_input" {
			t.Errorf("code = %q, want invalid_input", resp.Code)
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		router := newTestRouter(nil, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", bearerToken(t, organizer))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestListAndGetEvent(t *testing.T) {
	organizer := identity.Principal("organizer-1")

	t.Run("list is public and returns empty array", func(t *testing.T) {
		query := &mockQueryService{
			listEventsFn: func() ([]*models.Event, error) { return nil, nil },
		}
		router := newTestRouter(nil, nil, query)

		rec := doRequest(router, http.MethodGet, "/api/events", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if body := rec.Body.String(); body != "[]" {
			t.Errorf("body = %q, want []", body)
		}
	})

	t.Run("get is public", func(t *testing.T) {
		query := &mockQueryService{
			getEventFn: func(id int64) (*models.Event, error) { return sampleEvent(id, organizer), nil },
		}
		router := newTestRouter(nil, nil, query)

		rec := doRequest(router, http.MethodGet, "/api/events/7", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var event models.Event
		if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if event.ID != 7 {
			t.Errorf("ID = %d, want 7", event.ID)
		}
	})

	t.Run("unknown event maps to 404", func(t *testing.T) {
		query := &mockQueryService{
			getEventFn: func(int64) (*models.Event, error) { return nil, models.ErrEventNotFound },
		}
		router := newTestRouter(nil, nil, query)

		rec := doRequest(router, http.MethodGet, "/api/events/404", "", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if resp := decodeError(t, rec); resp.Code != "event_not_found" {
			t.Errorf("code = %q, want event_not_found", resp.Code)
		}
	})

	t.Run("non-numeric id maps to 400", func(t *testing.T) {
		router := newTestRouter(nil, nil, nil)

		rec := doRequest(router, http.MethodGet, "/api/events/abc", "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestMintTicket(t *testing.T) {
	buyer := identity.Principal("buyer-1")

	t.Run("mints for authenticated caller", func(t *testing.T) {
		issuance := &mockIssuanceService{
			mintTicketFn: func(caller identity.Principal, eventID int64) (*models.Ticket, error) {
				if caller != buyer {
					t.Errorf("caller = %q, want %q", caller, buyer)
				}
				return sampleTicket(1, eventID, caller), nil
			},
		}
		router := newTestRouter(issuance, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/events/3/tickets", bearerToken(t, buyer), nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
		}
		var ticket models.Ticket
		if err := json.Unmarshal(rec.Body.Bytes(), &ticket); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if ticket.EventID != 3 || ticket.Owner != buyer {
			t.Errorf("ticket = %+v", ticket)
		}
	})

	t.Run("sold out maps to 409", func(t *testing.T) {
		issuance := &mockIssuanceService{
			mintTicketFn: func(identity.Principal, int64) (*models.Ticket, error) {
				return nil, models.ErrNoTicketsAvailable
			},
		}
		router := newTestRouter(issuance, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/events/3/tickets", bearerToken(t, buyer), nil)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		if resp := decodeError(t, rec); resp.Code != "no_tickets_available" {
			t.Errorf("code = %q, want no_tickets_available", resp.Code)
		}
	})

	t.Run("unknown event maps to 404", func(t *testing.T) {
		issuance := &mockIssuanceService{
			mintTicketFn: func(identity.Principal, int64) (*models.Ticket, error) {
				return nil, models.ErrEventNotFound
			},
		}
		router := newTestRouter(issuance, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/events/404/tickets", bearerToken(t, buyer), nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		router := newTestRouter(nil, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/events/3/tickets", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestMyTickets(t *testing.T) {
	alice := identity.Principal("alice")

	t.Run("returns the caller's tickets", func(t *testing.T) {
		query := &mockQueryService{
			myTicketsFn: func(caller identity.Principal) ([]*models.Ticket, error) {
				if caller != alice {
					t.Errorf("caller = %q, want %q", caller, alice)
				}
				return []*models.Ticket{sampleTicket(1, 3, caller), sampleTicket(2, 3, caller)}, nil
			},
		}
		router := newTestRouter(nil, nil, query)

		rec := doRequest(router, http.MethodGet, "/api/tickets", bearerToken(t, alice), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var tickets []*models.Ticket
		if err := json.Unmarshal(rec.Body.Bytes(), &tickets); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(tickets) != 2 {
			t.Errorf("len(tickets) = %d, want 2", len(tickets))
		}
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		query := &mockQueryService{
			myTicketsFn: func(identity.Principal) ([]*models.Ticket, error) { return nil, nil },
		}
		router := newTestRouter(nil, nil, query)

		rec := doRequest(router, http.MethodGet, "/api/tickets", bearerToken(t, alice), nil)
		if body := rec.Body.String(); body != "[]" {
			t.Errorf("body = %q, want []", body)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		router := newTestRouter(nil, nil, nil)

		rec := doRequest(router, http.MethodGet, "/api/tickets", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestGetTicket(t *testing.T) {
	t.Run("is public", func(t *testing.T) {
		query := &mockQueryService{
			getTicketFn: func(id int64) (*models.Ticket, error) {
				return sampleTicket(id, 3, identity.Principal("alice")), nil
			},
		}
		router := newTestRouter(nil, nil, query)

		rec := doRequest(router, http.MethodGet, "/api/tickets/5", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("unknown ticket maps to 404", func(t *testing.T) {
		query := &mockQueryService{
			getTicketFn: func(int64) (*models.Ticket, error) { return nil, models.ErrTicketNotFound },
		}
		router := newTestRouter(nil, nil, query)

		rec := doRequest(router, http.MethodGet, "/api/tickets/404", "", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if resp := decodeError(t, rec); resp.Code != "ticket_not_found" {
			t.Errorf("code = %q, want ticket_not_found", resp.Code)
		}
	})
}

func TestValidateTicket(t *testing.T) {
	organizer := identity.Principal("organizer-1")
	body := gin.H{"qr_code": "TKT-abc123"}

	t.Run("redeems with matching credential", func(t *testing.T) {
		validation := &mockValidationService{
			validateTicketFn: func(caller identity.Principal, ticketID int64, qrCode string) (bool, error) {
				if caller != organizer || ticketID != 5 || qrCode != "TKT-abc123" {
					t.Errorf("got (%q, %d, %q)", caller, ticketID, qrCode)
				}
				return true, nil
			},
		}
		router := newTestRouter(nil, validation, nil)

		rec := doRequest(router, http.MethodPost, "/api/tickets/5/validate", bearerToken(t, organizer), body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
		}
		var resp ValidateTicketResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if !resp.Valid {
			t.Error("valid = false, want true")
		}
	})

	t.Run("maps engine errors to statuses", func(t *testing.T) {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{"not organizer", models.ErrUnauthorized, http.StatusForbidden, "forbidden"},
			{"wrong credential", models.ErrInvalidQRCode, http.StatusUnprocessableEntity, "invalid_qr_code"},
			{"already used", models.ErrTicketAlreadyUsed, http.StatusConflict, "ticket_already_used"},
			{"unknown ticket", models.ErrTicketNotFound, http.StatusNotFound, "ticket_not_found"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				validation := &mockValidationService{
					validateTicketFn: func(identity.Principal, int64, string) (bool, error) {
						return false, tc.err
					},
				}
				router := newTestRouter(nil, validation, nil)

				rec := doRequest(router, http.MethodPost, "/api/tickets/5/validate", bearerToken(t, organizer), body)
				if rec.Code != tc.wantStatus {
					t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
				}
				if resp := decodeError(t, rec); resp.Code != tc.wantCode {
					t.Errorf("code = %q, want %q", resp.Code, tc.wantCode)
				}
			})
		}
	})

	t.Run("rejects a body without a credential", func(t *testing.T) {
		router := newTestRouter(nil, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/tickets/5/validate", bearerToken(t, organizer), gin.H{})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		router := newTestRouter(nil, nil, nil)

		rec := doRequest(router, http.MethodPost, "/api/tickets/5/validate", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestHealth(t *testing.T) {
	router := newTestRouter(nil, nil, nil)

	rec := doRequest(router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
