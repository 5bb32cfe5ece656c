package model

import (
    "strconv"
    "strings"
    "time"
)

// ColDate is the required temporal column of every upload.  The name is a
// hard contract with uploaders: a file without it is rejected outright.
const ColDate = "date"

// ColTicketsSold is the default metric column summed by the aggregation
// engine.
const ColTicketsSold = "tickets_sold"

// Optional categorical columns recognized by name when present.  Uploads may
// carry any extra columns; these are the ones the breakdown endpoints know
// how to interpret.
const (
    ColAgeGroup = "age_group"
    ColChannel  = "channel"
    ColShow     = "show"
)

// TicketRecord is one validated row of uploaded sales data.  Date has been
// parsed and normalized to a UTC calendar day.  Values preserves every cell
// of the original row keyed by column name, with the date cell rewritten in
// canonical YYYY-MM-DD form so exports round-trip cleanly.
//
// Fields:
//  Date   – the calendar day the row belongs to (UTC midnight).
//  Values – raw cell values by column name.
type TicketRecord struct {
    Date   time.Time
    Values map[string]string
}

// Metric returns the integer value of the named column for this record.
// Fractional values are truncated; blank or unparseable cells count as zero
// so a few dirty cells do not sink an otherwise valid upload.
func (r TicketRecord) Metric(col string) int {
    v := strings.TrimSpace(r.Values[col])
    if v == "" {
        return 0
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    if f, err := strconv.ParseFloat(v, 64); err == nil {
        return int(f)
    }
    return 0
}

// Dataset is a validated upload: the surviving rows plus enough shape
// information to reserialize the table.  Records keep the original file
// order; aggregation does not depend on it.
//
// Fields:
//  Columns – header names in file order.
//  Records – rows whose date parsed successfully.
//  Dropped – count of rows discarded for an unparseable date.
type Dataset struct {
    Columns []string
    Records []TicketRecord
    Dropped int
}

// HasColumn reports whether the upload carried the named column.
func (d *Dataset) HasColumn(name string) bool {
    for _, c := range d.Columns {
        if c == name {
            return true
        }
    }
    return false
}
