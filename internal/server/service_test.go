package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/notify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestService(t *testing.T) (*Service, *notify.Simulated) {
	t.Helper()
	mailer := notify.NewSimulated(0)
	return New(Config{EmailFrom: "reports@upsell.local", Mailer: mailer}), mailer
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type projectionResponse struct {
	Message string         `json:"message"`
	Error   bool           `json:"error"`
	Data    ProjectionData `json:"data"`
}

func decodeProjection(t *testing.T, rec *httptest.ResponseRecorder) projectionResponse {
	t.Helper()
	var out projectionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestService(t)
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestDefaults(t *testing.T) {
	s, _ := newTestService(t)
	rec := do(t, s.Handler(), http.MethodGet, "/v1/defaults", nil)

	var out struct {
		Data model.Input `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if out.Data != model.DefaultInput() {
		t.Fatalf("defaults = %+v", out.Data)
	}
}

func TestProject_JSONBody(t *testing.T) {
	s, _ := newTestService(t)
	rec := do(t, s.Handler(), http.MethodPost, "/v1/projections", map[string]any{"timeframe": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/projections = %d %s", rec.Code, rec.Body.String())
	}

	out := decodeProjection(t, rec)
	if out.Message != "Results calculated successfully" {
		t.Fatalf("Message = %q", out.Message)
	}
	if len(out.Data.Result.MonthlyData) != 1 {
		t.Fatalf("len(MonthlyData) = %d, want 1", len(out.Data.Result.MonthlyData))
	}
	if out.Data.Result.TotalRevenue != 5_565_000 {
		t.Fatalf("TotalRevenue = %f, want 5565000", out.Data.Result.TotalRevenue)
	}
	if !strings.Contains(rec.Body.String(), `"month":1`) {
		t.Fatal("monthly records do not use the month key")
	}
}

func TestProject_Query(t *testing.T) {
	s, _ := newTestService(t)
	rec := do(t, s.Handler(), http.MethodGet, "/v1/projections?customers=10&revenue=100&growth=0&months=3&conversion=50&upsell_value=20", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/projections = %d %s", rec.Code, rec.Body.String())
	}

	out := decodeProjection(t, rec)
	if out.Data.Result.TotalRevenue != 1100 {
		t.Fatalf("TotalRevenue = %f, want 1100", out.Data.Result.TotalRevenue)
	}
	if out.Data.Cumulative.TotalRevenue != 3300 {
		t.Fatalf("Cumulative.TotalRevenue = %f, want 3300", out.Data.Cumulative.TotalRevenue)
	}
}

func TestProject_InvalidInputIs400(t *testing.T) {
	s, _ := newTestService(t)
	h := s.Handler()

	for _, tc := range []struct {
		name   string
		method string
		target string
		body   any
	}{
		{"zero timeframe", http.MethodPost, "/v1/projections", map[string]any{"timeframe": 0}},
		{"negative growth", http.MethodGet, "/v1/projections?growth=-1", nil},
		{"bad number", http.MethodGet, "/v1/projections?months=twelve", nil},
		{"malformed json", http.MethodPost, "/v1/projections", "{"},
		{"revenue overflow", http.MethodPost, "/v1/projections", map[string]any{
			"averageRevenue": 1e306, "upsellAverageValue": 1e306, "timeframe": 1,
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.target, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
			var out Response
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if !out.Error || out.Message == "" {
				t.Fatalf("response = %+v", out)
			}
		})
	}

	st := s.snapshotStatus()
	if st.Rejected != 5 || st.Calculations != 0 || st.LastError == "" {
		t.Fatalf("status = %+v", st)
	}
}

func TestReportPDF(t *testing.T) {
	s, _ := newTestService(t)
	rec := do(t, s.Handler(), http.MethodPost, "/v1/reports/pdf", map[string]any{
		"input":       model.DefaultInput(),
		"companyName": "Acme Cloud",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/reports/pdf = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "SaaS_Upsell_Analysis.pdf") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("body is not a PDF")
	}
}

func TestReportEmail(t *testing.T) {
	s, mailer := newTestService(t)
	rec := do(t, s.Handler(), http.MethodPost, "/v1/reports/email", map[string]any{
		"email":   "ceo@acme.io",
		"name":    "Jane",
		"company": "Acme",
		"input":   model.DefaultInput(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/reports/email = %d %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Message string         `json:"message"`
		Data    notify.Receipt `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if out.Message != notify.SuccessMessage {
		t.Fatalf("Message = %q", out.Message)
	}
	if out.Data.To != "ceo@acme.io" || out.Data.Attachments != 1 || !out.Data.Simulated {
		t.Fatalf("receipt = %+v", out.Data)
	}
	if len(mailer.Sent()) != 1 {
		t.Fatalf("mailer recorded %d sends, want 1", len(mailer.Sent()))
	}
}

func TestReportEmail_MissingAddress(t *testing.T) {
	s, mailer := newTestService(t)
	for _, body := range []map[string]any{
		{"name": "Jane"},
		{"email": "not-an-email"},
	} {
		rec := do(t, s.Handler(), http.MethodPost, "/v1/reports/email", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %v: status = %d, want 400", body, rec.Code)
		}
	}
	if len(mailer.Sent()) != 0 {
		t.Fatal("mailer sent despite invalid address")
	}
}

func TestEventsAndStatus(t *testing.T) {
	s, _ := newTestService(t)
	h := s.Handler()

	for i := 0; i < 3; i++ {
		if rec := do(t, h, http.MethodGet, "/v1/projections?months=2", nil); rec.Code != http.StatusOK {
			t.Fatalf("projection %d = %d", i, rec.Code)
		}
	}

	rec := do(t, h, http.MethodGet, "/v1/events?limit=2", nil)
	var events []Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decoding events: %v", err)
	}
	if len(events) != 2 || events[0].ID != 2 || events[1].ID != 3 {
		t.Fatalf("events = %+v", events)
	}
	if events[1].Type != EventProjection || events[1].Summary.Periods != 2 || events[1].RequestID == "" {
		t.Fatalf("event = %+v", events[1])
	}

	rec = do(t, h, http.MethodGet, "/v1/status", nil)
	var st Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if st.Calculations != 3 || st.EventCount != 3 || st.LastCalculationAt.IsZero() {
		t.Fatalf("status = %+v", st)
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPublishEventReachesSubscribers(t *testing.T) {
	s := New(Config{})
	ch := make(chan Event, 1)
	id := s.addSubscriber(ch)

	s.record(EventProjection, model.DefaultInput(), Summary{Periods: 12}, nil)

	select {
	case ev := <-ch:
		if ev.Type != EventProjection || ev.Summary.Periods != 12 {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatal("subscriber received nothing")
	}

	s.removeSubscriber(id)
	if st := s.snapshotStatus(); st.SubscriberCount != 0 {
		t.Fatalf("SubscriberCount = %d, want 0", st.SubscriberCount)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := New(Config{AllowedOrigins: []string{"http://localhost:3000"}})
	req := httptest.NewRequest(http.MethodOptions, "/v1/projections", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}
