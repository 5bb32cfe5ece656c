package handler

import (
    "context"
    "errors"
    "fmt"
    "mime/multipart"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/tdmsuite/insights/internal/analytics"
    "github.com/tdmsuite/insights/internal/audit"
    "github.com/tdmsuite/insights/internal/config"
    "github.com/tdmsuite/insights/internal/export"
    "github.com/tdmsuite/insights/internal/ingest"
    "github.com/tdmsuite/insights/internal/model"
    audit_publisher "github.com/tdmsuite/insights/internal/service"
)

// topShowCount caps the "top performing shows" breakdown.
const topShowCount = 5

// previewRows caps the raw-row preview echoed back after an upload.
const previewRows = 5

// InsightsHandler bundles dependencies for the analytics endpoints.
type InsightsHandler struct {
    Cfg config.Config
    // Audit publishes an audit event; overridable in tests.
    Audit func(ctx context.Context, ev audit.Event) error
    // Now supplies timestamps for watermarks; overridable in tests.
    Now func() time.Time
}

func NewInsightsHandler(cfg config.Config) *InsightsHandler {
    return &InsightsHandler{Cfg: cfg, Audit: audit_publisher.PublishEvent, Now: time.Now}
}

// ----- DTOs -----

type seriesPointDTO struct {
    Date        string `json:"date"`
    TicketsSold int    `json:"tickets_sold"`
}

type forecastPointDTO struct {
    Date      string `json:"date"`
    Predicted int    `json:"predicted_tickets_sold"`
}

type forecastDTO struct {
    Points  []forecastPointDTO `json:"points"`
    BestDay string             `json:"best_day"`
}

type pivotDTO struct {
    Dimension string   `json:"dimension"`
    Dates     []string `json:"dates"`
    Rows      []string `json:"rows"`
    Cells     [][]int  `json:"cells"`
}

type analyzeResp struct {
    Rows            int                   `json:"rows"`
    Dropped         int                   `json:"dropped"`
    Preview         []map[string]string   `json:"preview"`
    SalesByDate     []seriesPointDTO      `json:"sales_by_date"`
    AgeDistribution []model.CategoryCount `json:"age_distribution,omitempty"`
    ChannelTotals   []model.CategoryTotal `json:"channel_breakdown,omitempty"`
    TopShows        []model.CategoryTotal `json:"top_shows,omitempty"`
    Heatmap         *pivotDTO             `json:"heatmap,omitempty"`
    Forecast        forecastDTO           `json:"forecast"`
}

// heatmapDimensions are the categorical columns the heatmap accepts.
var heatmapDimensions = map[string]bool{
    model.ColAgeGroup: true,
    model.ColChannel:  true,
    model.ColShow:     true,
}

// Analyze ingests an uploaded ticket-sales CSV and returns the full insight
// bundle: per-date sales, audience breakdowns, the heatmap pivot and the
// seven-day demand forecast with the recommended marketing day.
func (h *InsightsHandler) Analyze(c echo.Context) error {
    ds, err := h.readUpload(c)
    if err != nil {
        return uploadError(c, err)
    }
    if err := ingest.RequireColumns(ds, model.ColTicketsSold); err != nil {
        return uploadError(c, err)
    }

    dim := c.QueryParam("dimension")
    if dim == "" {
        dim = model.ColChannel
    }
    if !heatmapDimensions[dim] {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("unknown heatmap dimension %q", dim)})
    }

    series := analytics.SalesByDate(ds, model.ColTicketsSold)
    fc, err := analytics.ForecastDemand(series)
    if err != nil {
        // Unreachable after validation: a dataset with records always
        // yields a non-empty series.
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "forecast failed"})
    }

    resp := analyzeResp{
        Rows:        len(ds.Records),
        Dropped:     ds.Dropped,
        Preview:     preview(ds),
        SalesByDate: toSeriesDTO(series),
        Forecast:    toForecastDTO(fc),
    }
    if dist, ok := analytics.Distribution(ds, model.ColAgeGroup); ok {
        resp.AgeDistribution = dist
    }
    if totals, ok := analytics.TotalsBy(ds, model.ColChannel, model.ColTicketsSold); ok {
        resp.ChannelTotals = totals
    }
    if totals, ok := analytics.TotalsBy(ds, model.ColShow, model.ColTicketsSold); ok {
        resp.TopShows = analytics.TopN(totals, topShowCount)
    }
    if pv, ok := analytics.PivotBy(ds, dim, model.ColTicketsSold); ok {
        resp.Heatmap = toPivotDTO(pv)
    }

    actor := currentActor(c)
    _ = h.Audit(c.Request().Context(), audit.NewEvent(actor, "insights.analyzed",
        fmt.Sprintf("rows=%d dropped=%d", len(ds.Records), ds.Dropped)))

    return c.JSON(http.StatusOK, resp)
}

// Export re-validates the upload and returns it as a watermarked CSV blob.
// The entitlement gate runs as route middleware before this handler, so a
// free-tier session never reaches the watermark computation.
func (h *InsightsHandler) Export(c echo.Context) error {
    ds, err := h.readUpload(c)
    if err != nil {
        return uploadError(c, err)
    }

    actor := currentActor(c)
    blob, token, err := export.WatermarkCSV(ds, actor, h.Now())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
    }

    _ = h.Audit(c.Request().Context(), audit.NewEvent(actor, "insights.exported",
        fmt.Sprintf("rows=%d watermark=%s", len(ds.Records), token)))

    c.Response().Header().Set(echo.HeaderContentDisposition,
        `attachment; filename="insights_watermarked.csv"`)
    return c.Blob(http.StatusOK, "text/csv", blob)
}

// readUpload pulls the multipart "file" part and runs ingestion.
func (h *InsightsHandler) readUpload(c echo.Context) (*model.Dataset, error) {
    fh, err := c.FormFile("file")
    if err != nil {
        return nil, fmt.Errorf("%w: multipart field 'file' required", ingest.ErrMalformedInput)
    }
    f, err := fh.Open()
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ingest.ErrMalformedInput, err)
    }
    defer func(f multipart.File) { _ = f.Close() }(f)
    return ingest.Parse(f)
}

// uploadError maps the ingestion taxonomy onto HTTP statuses.  Every case
// is user-correctable; the body tells the uploader what to fix.
func uploadError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, ingest.ErrMissingColumn), errors.Is(err, ingest.ErrNoValidRows):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    case errors.Is(err, ingest.ErrMalformedInput):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
    }
}

// currentActor resolves the audit actor / watermark identity.
func currentActor(c echo.Context) string {
    if v, ok := c.Get("user_id").(string); ok && v != "" {
        return v
    }
    return "anon"
}

const dayFormat = "2006-01-02"

func preview(ds *model.Dataset) []map[string]string {
    n := previewRows
    if len(ds.Records) < n {
        n = len(ds.Records)
    }
    out := make([]map[string]string, 0, n)
    for _, rec := range ds.Records[:n] {
        row := make(map[string]string, len(rec.Values))
        for k, v := range rec.Values {
            row[k] = v
        }
        out = append(out, row)
    }
    return out
}

func toSeriesDTO(series []model.SeriesPoint) []seriesPointDTO {
    out := make([]seriesPointDTO, len(series))
    for i, p := range series {
        out[i] = seriesPointDTO{Date: p.Date.Format(dayFormat), TicketsSold: p.Value}
    }
    return out
}

func toForecastDTO(fc *model.Forecast) forecastDTO {
    points := make([]forecastPointDTO, len(fc.Points))
    for i, p := range fc.Points {
        points[i] = forecastPointDTO{Date: p.Date.Format(dayFormat), Predicted: p.Predicted}
    }
    return forecastDTO{Points: points, BestDay: fc.BestDay.Format(dayFormat)}
}

func toPivotDTO(pv *model.Pivot) *pivotDTO {
    dates := make([]string, len(pv.Dates))
    for i, d := range pv.Dates {
        dates[i] = d.Format(dayFormat)
    }
    return &pivotDTO{Dimension: pv.Dimension, Dates: dates, Rows: pv.Rows, Cells: pv.Cells}
}
