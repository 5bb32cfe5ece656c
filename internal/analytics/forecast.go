package analytics

import (
    "errors"
    "time"

    "github.com/tdmsuite/insights/internal/model"
)

// ErrEmptySeries is returned when a forecast is requested for a series with
// no points.  A single point is enough: the fitted line degenerates to a
// flat one (slope zero), which is still a valid projection.
var ErrEmptySeries = errors.New("empty series")

const secondsPerDay = 86400

// ForecastDemand fits a least-squares line mapping each date's ordinal
// (days since the Unix epoch) to its aggregated count and projects it over
// the seven calendar days after the last observed date.  Gaps in the
// observed series do not move the window: it is always anchored to the last
// seen date, not to "today".
//
// Predictions are the raw fitted values truncated to integers.  Negative
// predictions are not clamped; a hard downward trend is reported as the
// model produced it.
func ForecastDemand(series []model.SeriesPoint) (*model.Forecast, error) {
    if len(series) == 0 {
        return nil, ErrEmptySeries
    }

    slope, intercept := fitLine(series)

    last := series[len(series)-1].Date
    points := make([]model.ForecastPoint, 0, model.ForecastHorizonDays)
    best := 0
    for i := 1; i <= model.ForecastHorizonDays; i++ {
        day := last.AddDate(0, 0, i)
        pred := int(slope*float64(ordinal(day)) + intercept)
        points = append(points, model.ForecastPoint{Date: day, Predicted: pred})
        // Stable argmax: strictly greater only, so ties keep the earliest day.
        if points[i-1].Predicted > points[best].Predicted {
            best = i - 1
        }
    }

    return &model.Forecast{Points: points, BestDay: points[best].Date}, nil
}

// fitLine computes the closed-form least-squares slope and intercept for
// ordinal day -> count.  With a single distinct x the denominator is zero
// and the fit degenerates to a flat line through the mean.
func fitLine(series []model.SeriesPoint) (slope, intercept float64) {
    n := float64(len(series))
    var sumX, sumY, sumXY, sumXX float64
    for _, p := range series {
        x := float64(ordinal(p.Date))
        y := float64(p.Value)
        sumX += x
        sumY += y
        sumXY += x * y
        sumXX += x * x
    }
    denom := n*sumXX - sumX*sumX
    if denom == 0 {
        return 0, sumY / n
    }
    slope = (n*sumXY - sumX*sumY) / denom
    intercept = (sumY - slope*sumX) / n
    return slope, intercept
}

// ordinal converts a UTC-midnight date to whole days since the Unix epoch.
func ordinal(t time.Time) int64 {
    return t.Unix() / secondsPerDay
}
