package model

import "time"

// SeriesPoint is one point of an aggregated time series: the summed metric
// value for a single calendar day.  Series are always ordered ascending by
// date.
//
// Fields:
//  Date  – the calendar day (UTC midnight).
//  Value – metric sum across all rows sharing that day.
type SeriesPoint struct {
    Date  time.Time `json:"date"`
    Value int       `json:"tickets_sold"`
}

// CategoryTotal is the summed metric for one value of a categorical column,
// e.g. tickets sold per sales channel.
type CategoryTotal struct {
    Category string `json:"category"`
    Total    int    `json:"total"`
}

// CategoryCount is a row-count distribution bucket for a categorical column,
// e.g. how many rows fall in each age group.
type CategoryCount struct {
    Category string `json:"category"`
    Count    int    `json:"count"`
}

// Pivot is a zero-filled cross-tabulation of metric sums: one row per
// category value, one cell per observed date.  Dates are ascending and
// shared by every row; Cells[i][j] is the sum for Rows[i] on Dates[j].
// Combinations absent from the upload stay at zero.
type Pivot struct {
    Dimension string      `json:"dimension"`
    Dates     []time.Time `json:"dates"`
    Rows      []string    `json:"rows"`
    Cells     [][]int     `json:"cells"`
}
