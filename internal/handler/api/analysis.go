package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"TrendSight/internal/domain/models"
	domrepo "TrendSight/internal/domain/repository"
	"TrendSight/internal/export"
	icache "TrendSight/internal/service/cache"
	"TrendSight/internal/usecase"
	xhttp "TrendSight/pkg/http"
	xlogger "TrendSight/pkg/logger"

	"github.com/labstack/echo/v4"
)

const responseTTL = 60 * time.Second

// AnalysisHandler exposes the indicator and signal pipeline over HTTP.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analysis *usecase.AnalysisUseCase
	scan     *usecase.ScanUseCase
	cache    icache.BytesCache
	health   func(ctx echo.Context) error
}

func NewAnalysisHandler(logger *xlogger.Logger, analysis *usecase.AnalysisUseCase, scan *usecase.ScanUseCase) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analysis: analysis, scan: scan}
}

// SetCache injects a response cache.
func (h *AnalysisHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetHealthCheck injects a storage health probe for /health.
func (h *AnalysisHandler) SetHealthCheck(fn func(ctx echo.Context) error) { h.health = fn }

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/indicators", h.Indicators)
	g.GET("/analyze", h.Analyze)
	g.GET("/analyze/export", h.AnalyzeExport)
	g.POST("/scan", h.Scan)
	e.GET("/health", h.Health)
}

func (h *AnalysisHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, to := parseRange(req.From, req.To)
	var tf domrepo.Timeframe
	if req.Timeframe != "" {
		tf = domrepo.NormalizeTimeframe(req.Timeframe)
	}

	key := icache.IndicatorsKey(req.Symbol, req.From, req.To, string(tf))
	if b, ok := h.cached(key); ok {
		return jsonBlob(c, b)
	}

	set, err := h.analysis.GetIndicators(c.Request().Context(), usecase.GetIndicatorsParams{
		Symbol: req.Symbol, From: from, To: to,
	})
	if err != nil {
		h.logger.Error("indicators usecase error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, domainError(err))
	}

	res := NewIndicatorsResponse(set, tf)
	h.store(key, res)
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, to := parseRange(req.From, req.To)

	key := icache.AnalyzeKey(req.Symbol, req.From, req.To)
	if b, ok := h.cached(key); ok {
		return jsonBlob(c, b)
	}

	res, err := h.analysis.Analyze(c.Request().Context(), usecase.AnalyzeParams{
		Symbol: req.Symbol, From: from, To: to, Limit: req.Limit,
	})
	if err != nil {
		h.logger.Error("analyze usecase error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, domainError(err))
	}

	h.store(key, res)
	return xhttp.SuccessResponse(c, res)
}

// AnalyzeExport streams the analysis result as a CSV attachment in the
// canonical export column order.
func (h *AnalysisHandler) AnalyzeExport(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, to := parseRange(req.From, req.To)

	res, err := h.analysis.Analyze(c.Request().Context(), usecase.AnalyzeParams{
		Symbol: req.Symbol, From: from, To: to, Limit: req.Limit,
	})
	if err != nil {
		h.logger.Error("analyze export usecase error",
			xlogger.String("symbol", req.Symbol),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, domainError(err))
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, res.Signals); err != nil {
		h.logger.Error("analyze export encode error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="signals_`+req.Symbol+`.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *AnalysisHandler) Scan(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, to := parseRange(req.From, req.To)

	res, err := h.scan.Scan(c.Request().Context(), usecase.ScanParams{
		Symbols: req.Symbols, From: from, To: to, Publish: req.Publish,
	})
	if err != nil {
		h.logger.Error("scan usecase error",
			xlogger.Int("symbols", len(req.Symbols)),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	if h.health != nil {
		if err := h.health(c); err != nil {
			return xhttp.DataResponse(c, http.StatusServiceUnavailable, map[string]string{"status": "down", "error": err.Error()})
		}
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *AnalysisHandler) cached(key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		h.logger.Warn("cache get error", xlogger.String("key", key), xlogger.Error(err))
		return nil, false
	}
	return b, ok
}

func (h *AnalysisHandler) store(key string, v interface{}) {
	if h.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, responseTTL); err != nil {
		h.logger.Warn("cache set error", xlogger.String("key", key), xlogger.Error(err))
	}
}

// jsonBlob re-wraps a cached payload in the response envelope without
// re-marshalling it.
func jsonBlob(c echo.Context, b []byte) error {
	return xhttp.SuccessResponse(c, json.RawMessage(b))
}

func parseRange(from, to string) (time.Time, time.Time) {
	var f, t time.Time
	if v, ok := parseDate(from); ok {
		f = v
	}
	if v, ok := parseDate(to); ok {
		t = v
	}
	return f, t
}
