package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/upsell/internal/export"
	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/notify"
	"github.com/theirongolddev/upsell/internal/projection"
	"github.com/theirongolddev/upsell/internal/report"
)

// Response wraps every JSON payload.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   bool   `json:"error,omitempty"`
}

func errorResponse(message string) Response {
	return Response{Message: message, Error: true}
}

// ProjectionData is the payload of a successful projection.
type ProjectionData struct {
	Input      model.Input  `json:"input"`
	Result     model.Result `json:"result"`
	Cumulative model.Totals `json:"cumulative"`
}

type projectionQuery struct {
	CurrentCustomers     int     `form:"customers"`
	AverageRevenue       float64 `form:"revenue"`
	UpsellConversionRate float64 `form:"conversion"`
	UpsellAverageValue   float64 `form:"upsell_value"`
	GrowthRate           float64 `form:"growth"`
	Timeframe            int     `form:"months"`
}

type reportRequest struct {
	Input        model.Input `json:"input"`
	CompanyName  string      `json:"companyName"`
	IncludeGuide bool        `json:"includeGuide"`
}

type emailRequest struct {
	notify.Request
	Input model.Input `json:"input"`
}

func (s *Service) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Service) handleDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Message: "Default inputs", Data: s.cfg.Defaults})
}

func (s *Service) handleProject(c *gin.Context) {
	in := s.cfg.Defaults
	if err := c.ShouldBindJSON(&in); err != nil {
		s.reject(c, in, fmt.Errorf("decoding input: %w", err))
		return
	}
	s.project(c, in)
}

func (s *Service) handleProjectQuery(c *gin.Context) {
	d := s.cfg.Defaults
	q := projectionQuery{
		CurrentCustomers:     d.CurrentCustomers,
		AverageRevenue:       d.AverageRevenue,
		UpsellConversionRate: d.UpsellConversionRate,
		UpsellAverageValue:   d.UpsellAverageValue,
		GrowthRate:           d.GrowthRate,
		Timeframe:            d.Timeframe,
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		s.reject(c, d, fmt.Errorf("decoding query: %w", err))
		return
	}
	s.project(c, model.Input(q))
}

func (s *Service) project(c *gin.Context, in model.Input) {
	res, err := projection.Project(in)
	if err != nil {
		s.fail(c, in, err)
		return
	}

	s.record(EventProjection, in, summarize(res), nil)
	c.JSON(http.StatusOK, Response{
		Message: "Results calculated successfully",
		Data: ProjectionData{
			Input:      in,
			Result:     res,
			Cumulative: projection.Cumulative(res),
		},
	})
}

func (s *Service) handlePDF(c *gin.Context) {
	req := reportRequest{Input: s.cfg.Defaults, CompanyName: s.cfg.CompanyName}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, req.Input, fmt.Errorf("decoding report request: %w", err))
		return
	}

	res, err := projection.Project(req.Input)
	if err != nil {
		s.fail(c, req.Input, err)
		return
	}
	data, err := export.PDF(report.Build(req.Input, res), export.Options{
		CompanyName:  req.CompanyName,
		IncludeGuide: req.IncludeGuide,
	})
	if err != nil {
		s.fail(c, req.Input, err)
		return
	}

	s.record(EventReport, req.Input, summarize(res), nil)

	filename := s.cfg.ReportFile
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Data(http.StatusOK, "application/pdf", data)
	log.Printf("[server] report %s generated (%d bytes)", filename, len(data))
}

func (s *Service) handleEmail(c *gin.Context) {
	req := emailRequest{Input: s.cfg.Defaults}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reject(c, req.Input, fmt.Errorf("decoding email request: %w", err))
		return
	}
	if err := req.Request.Validate(); err != nil {
		s.reject(c, req.Input, err)
		return
	}

	res, err := projection.Project(req.Input)
	if err != nil {
		s.fail(c, req.Input, err)
		return
	}
	rep := report.Build(req.Input, res)

	company := req.Company
	if company == "" {
		company = s.cfg.CompanyName
	}
	pdf, err := export.PDF(rep, export.Options{CompanyName: company})
	if err != nil {
		s.fail(c, req.Input, err)
		return
	}
	msg, err := notify.Compose(req.Request, s.cfg.EmailFrom, rep, pdf, s.cfg.ReportFile)
	if err != nil {
		s.fail(c, req.Input, err)
		return
	}
	receipt, err := s.cfg.Mailer.Send(c.Request.Context(), msg)
	if err != nil {
		s.fail(c, req.Input, err)
		return
	}

	s.record(EventEmail, req.Input, summarize(res), nil)
	c.JSON(http.StatusOK, Response{Message: notify.SuccessMessage, Data: receipt})
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(c *gin.Context) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit < len(events) {
		events = events[len(events)-limit:]
	}
	c.JSON(http.StatusOK, events)
}

func (s *Service) handleStream(c *gin.Context) {
	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	writeSSE(w, Event{Type: "hello", Timestamp: time.Now()})
	w.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			w.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

// reject answers 400 for requests that could not be decoded or validated.
func (s *Service) reject(c *gin.Context, in model.Input, err error) {
	s.record(EventRejected, in, Summary{}, err)
	c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
}

// fail maps invalid input to 400 and everything else to 500.
func (s *Service) fail(c *gin.Context, in model.Input, err error) {
	if errors.Is(err, projection.ErrInvalidInput) || errors.Is(err, notify.ErrInvalidRecipient) {
		s.reject(c, in, err)
		return
	}
	s.record(EventRejected, in, Summary{}, err)
	log.Printf("[server] request failed: %v", err)
	c.JSON(http.StatusInternalServerError, errorResponse("Failed to process request. Please try again."))
}
