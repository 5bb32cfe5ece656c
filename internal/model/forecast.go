package model

import "time"

// ForecastHorizonDays is the fixed projection window: the seven calendar
// days immediately after the last observed date.
const ForecastHorizonDays = 7

// ForecastPoint is one projected day of demand.  Predicted is the raw model
// output truncated to an integer.  Negative predictions are passed through
// untouched; whether to clamp them is a product decision that has not been
// made, so the engine reports what the model says.
type ForecastPoint struct {
    Date      time.Time `json:"date"`
    Predicted int       `json:"predicted_tickets_sold"`
}

// Forecast is the full projection: exactly ForecastHorizonDays contiguous
// points plus the date with the highest predicted demand.  Ties on the
// maximum resolve to the earliest date.
type Forecast struct {
    Points  []ForecastPoint `json:"points"`
    BestDay time.Time       `json:"best_day"`
}
