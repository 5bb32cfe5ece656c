// Package analytics turns validated datasets into aggregated series,
// categorical breakdowns and demand forecasts.  Everything here is pure:
// inputs are read-only and results are freshly allocated, so shuffling the
// input row order never changes a result.
package analytics

import (
    "sort"
    "strings"
    "time"

    "github.com/tdmsuite/insights/internal/model"
)

// SalesByDate groups the dataset by calendar day and sums the named metric
// per day, returning an ascending-by-date series.  Rows sharing a day are
// summed, never overwritten.  The caller is responsible for checking the
// metric column exists (ingest.RequireColumns); with the column absent every
// sum is simply zero.
func SalesByDate(ds *model.Dataset, metric string) []model.SeriesPoint {
    sums := make(map[time.Time]int, len(ds.Records))
    for _, rec := range ds.Records {
        sums[rec.Date] += rec.Metric(metric)
    }
    series := make([]model.SeriesPoint, 0, len(sums))
    for day, total := range sums {
        series = append(series, model.SeriesPoint{Date: day, Value: total})
    }
    sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
    return series
}

// TotalsBy sums the metric per value of a categorical column, descending by
// total, ties broken alphabetically so output is deterministic.  The second
// return is false when the dataset does not carry the column; callers skip
// the breakdown rather than treating it as an error.
func TotalsBy(ds *model.Dataset, key, metric string) ([]model.CategoryTotal, bool) {
    if !ds.HasColumn(key) {
        return nil, false
    }
    sums := map[string]int{}
    for _, rec := range ds.Records {
        sums[categoryOf(rec, key)] += rec.Metric(metric)
    }
    totals := make([]model.CategoryTotal, 0, len(sums))
    for cat, total := range sums {
        totals = append(totals, model.CategoryTotal{Category: cat, Total: total})
    }
    sort.Slice(totals, func(i, j int) bool {
        if totals[i].Total != totals[j].Total {
            return totals[i].Total > totals[j].Total
        }
        return totals[i].Category < totals[j].Category
    })
    return totals, true
}

// TopN trims a ranked breakdown to its first n entries.
func TopN(totals []model.CategoryTotal, n int) []model.CategoryTotal {
    if n < len(totals) {
        return totals[:n]
    }
    return totals
}

// Distribution counts rows per value of a categorical column (not a metric
// sum), descending by count.  Used for the audience age breakdown.  Returns
// false when the column is absent.
func Distribution(ds *model.Dataset, key string) ([]model.CategoryCount, bool) {
    if !ds.HasColumn(key) {
        return nil, false
    }
    counts := map[string]int{}
    for _, rec := range ds.Records {
        counts[categoryOf(rec, key)]++
    }
    out := make([]model.CategoryCount, 0, len(counts))
    for cat, n := range counts {
        out = append(out, model.CategoryCount{Category: cat, Count: n})
    }
    sort.Slice(out, func(i, j int) bool {
        if out[i].Count != out[j].Count {
            return out[i].Count > out[j].Count
        }
        return out[i].Category < out[j].Category
    })
    return out, true
}

// PivotBy cross-tabulates metric sums per (category value, date) pair with
// missing combinations filled as zero, the shape a heatmap renders directly.
// Dates ascend; categories sort alphabetically.  Returns false when the
// dataset does not carry the dimension column.
func PivotBy(ds *model.Dataset, key, metric string) (*model.Pivot, bool) {
    if !ds.HasColumn(key) {
        return nil, false
    }

    type cellKey struct {
        cat string
        day time.Time
    }
    sums := map[cellKey]int{}
    daySet := map[time.Time]bool{}
    catSet := map[string]bool{}
    for _, rec := range ds.Records {
        cat := categoryOf(rec, key)
        sums[cellKey{cat, rec.Date}] += rec.Metric(metric)
        daySet[rec.Date] = true
        catSet[cat] = true
    }

    dates := make([]time.Time, 0, len(daySet))
    for d := range daySet {
        dates = append(dates, d)
    }
    sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

    cats := make([]string, 0, len(catSet))
    for c := range catSet {
        cats = append(cats, c)
    }
    sort.Strings(cats)

    cells := make([][]int, len(cats))
    for i, cat := range cats {
        row := make([]int, len(dates))
        for j, d := range dates {
            row[j] = sums[cellKey{cat, d}]
        }
        cells[i] = row
    }

    return &model.Pivot{Dimension: key, Dates: dates, Rows: cats, Cells: cells}, true
}

// categoryOf reads the categorical cell for a record, folding blanks into an
// explicit bucket so they stay visible in breakdowns.
func categoryOf(rec model.TicketRecord, key string) string {
    v := strings.TrimSpace(rec.Values[key])
    if v == "" {
        return "(blank)"
    }
    return v
}
