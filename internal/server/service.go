// Package server exposes projections, PDF reports and simulated email
// delivery over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/theirongolddev/upsell/internal/export"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/notify"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	AllowedOrigins []string
	EventsBuffer   int

	Defaults    model.Input
	CompanyName string
	ReportFile  string
	EmailFrom   string
	Mailer      notify.Mailer
}

// Summary is the compact result carried by events.
type Summary struct {
	Periods          int     `json:"periods"`
	TotalRevenue     float64 `json:"total_revenue"`
	UpsellRevenue    float64 `json:"upsell_revenue"`
	UpsellPercentage float64 `json:"upsell_percentage"`
}

// Event is recorded for every calculation, report and email.
type Event struct {
	ID        int64       `json:"id"`
	RequestID string      `json:"request_id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Input     model.Input `json:"input"`
	Summary   Summary     `json:"summary"`
	Error     string      `json:"error,omitempty"`
}

// Event types.
const (
	EventProjection = "projection"
	EventReport     = "report"
	EventEmail      = "email"
	EventRejected   = "rejected"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt         time.Time `json:"started_at"`
	UptimeSec         int64     `json:"uptime_sec"`
	Calculations      int64     `json:"calculations"`
	Reports           int64     `json:"reports"`
	Emails            int64     `json:"emails"`
	Rejected          int64     `json:"rejected"`
	LastCalculationAt time.Time `json:"last_calculation_at"`
	LastError         string    `json:"last_error,omitempty"`
	EventCount        int       `json:"event_count"`
	SubscriberCount   int       `json:"subscriber_count"`
}

// Service provides the HTTP API.
type Service struct {
	cfg Config

	mu                sync.RWMutex
	startedAt         time.Time
	calculations      int64
	reports           int64
	emails            int64
	rejected          int64
	lastCalculationAt time.Time
	lastError         string
	nextEventID       int64
	events            []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8790"
	}
	if cfg.Defaults == (model.Input{}) {
		cfg.Defaults = model.DefaultInput()
	}
	if cfg.CompanyName == "" {
		cfg.CompanyName = export.DefaultCompanyName
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = export.DefaultFileName
	}
	if cfg.Mailer == nil {
		cfg.Mailer = notify.NewSimulated(notify.DefaultDelay)
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler builds the gin router with every route registered.
func (s *Service) Handler() http.Handler {
	router := gin.Default()
	router.Use(cors.New(s.corsConfig()))

	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/v1")
	v1.GET("/defaults", s.handleDefaults)
	v1.GET("/projections", s.handleProjectQuery)
	v1.POST("/projections", s.handleProject)
	v1.POST("/reports/pdf", s.handlePDF)
	v1.POST("/reports/email", s.handleEmail)
	v1.GET("/status", s.handleStatus)
	v1.GET("/events", s.handleEvents)
	v1.GET("/stream", s.handleStream)

	return router
}

func (s *Service) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Disposition", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.AllowedOrigins
	}
	return cfg
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("[server] listening on http://%s", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("upsell http server: %w", err)
	}
}

func summarize(res model.Result) Summary {
	return Summary{
		Periods:          len(res.MonthlyData),
		TotalRevenue:     res.TotalRevenue,
		UpsellRevenue:    res.UpsellRevenue,
		UpsellPercentage: res.UpsellPercentage,
	}
}

// record updates counters for one handled request and publishes its event.
func (s *Service) record(typ string, in model.Input, sum Summary, err error) Event {
	now := time.Now()

	s.mu.Lock()
	switch typ {
	case EventProjection:
		s.calculations++
		s.lastCalculationAt = now
	case EventReport:
		s.reports++
	case EventEmail:
		s.emails++
	case EventRejected:
		s.rejected++
	}
	if err != nil {
		s.lastError = err.Error()
	}
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		RequestID: uuid.NewString(),
		Type:      typ,
		Timestamp: now,
		Input:     in,
		Summary:   sum,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	s.mu.Unlock()

	s.publishEvent(ev)
	return ev
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:         s.startedAt,
		UptimeSec:         int64(time.Since(s.startedAt).Seconds()),
		Calculations:      s.calculations,
		Reports:           s.reports,
		Emails:            s.emails,
		Rejected:          s.rejected,
		LastCalculationAt: s.lastCalculationAt,
		LastError:         s.lastError,
		EventCount:        len(s.events),
		SubscriberCount:   len(s.subs),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
