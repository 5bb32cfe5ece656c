package ingest

import (
    "bufio"
    "bytes"
    "encoding/csv"
    "fmt"
    "io"
    "strings"
    "time"
    "unicode/utf8"

    "github.com/tdmsuite/insights/internal/model"
)

// dateLayout is the strict format tried first for every date cell.
const dateLayout = "2006-01-02"

// fallbackLayouts are tried in order when the strict parse fails, mirroring
// a best-effort generic date parse.  Anything that still fails drops the row.
var fallbackLayouts = []string{
    "2006/01/02",
    "01/02/2006",
    "2006-01-02 15:04:05",
    time.RFC3339,
    "Jan 2, 2006",
    "2 Jan 2006",
}

// Parse reads a CSV stream and returns a validated Dataset.
//
// Validation is all-or-nothing per upload:
//   - a stream that cannot be read as delimited UTF-8 text fails with
//     ErrMalformedInput and nothing else runs;
//   - a header without the literal `date` column fails with ErrMissingColumn;
//   - rows whose date cell parses under no known layout are dropped, and if
//     zero rows survive the upload fails with ErrNoValidRows.
//
// Parse never mutates caller state; it returns the cleaned table or an error.
func Parse(r io.Reader) (*model.Dataset, error) {
    cr := csv.NewReader(stripBOM(r))

    header, err := cr.Read()
    if err != nil {
        if err == io.EOF {
            return nil, fmt.Errorf("%w: empty upload", ErrMalformedInput)
        }
        return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
    }

    cols := make([]string, len(header))
    dateIdx := -1
    for i, name := range header {
        name = strings.TrimSpace(name)
        if !utf8.ValidString(name) || strings.ContainsRune(name, 0) {
            return nil, fmt.Errorf("%w: header is not valid text", ErrMalformedInput)
        }
        cols[i] = name
        if name == model.ColDate {
            dateIdx = i
        }
    }
    if dateIdx < 0 {
        return nil, fmt.Errorf("%w: %s", ErrMissingColumn, model.ColDate)
    }

    ds := &model.Dataset{Columns: cols}
    for {
        row, err := cr.Read()
        if err == io.EOF {
            break
        }
        if err != nil {
            // Ragged or mis-quoted rows abort the whole upload rather than
            // silently analyzing a partial table.
            return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
        }

        day, ok := parseDay(row[dateIdx])
        if !ok {
            ds.Dropped++
            continue
        }

        values := make(map[string]string, len(cols))
        for i, cell := range row {
            if !utf8.ValidString(cell) {
                return nil, fmt.Errorf("%w: row is not valid text", ErrMalformedInput)
            }
            values[cols[i]] = cell
        }
        values[model.ColDate] = day.Format(dateLayout)

        ds.Records = append(ds.Records, model.TicketRecord{Date: day, Values: values})
    }

    if len(ds.Records) == 0 {
        return nil, fmt.Errorf("%w: every row had an unparseable %s", ErrNoValidRows, model.ColDate)
    }
    return ds, nil
}

// RequireColumns verifies that the dataset carries every named column and
// returns ErrMissingColumn naming the first absent one.  Callers use it for
// preconditions beyond the date column, e.g. the metric column.
func RequireColumns(ds *model.Dataset, cols ...string) error {
    for _, c := range cols {
        if !ds.HasColumn(c) {
            return fmt.Errorf("%w: %s", ErrMissingColumn, c)
        }
    }
    return nil
}

// parseDay parses one date cell, trying the strict layout first and then the
// generic fallbacks.  The result is normalized to UTC midnight so rows from
// mixed formats land on the same calendar day.
func parseDay(cell string) (time.Time, bool) {
    cell = strings.TrimSpace(cell)
    if cell == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(dateLayout, cell); err == nil {
        return midnight(t), true
    }
    for _, layout := range fallbackLayouts {
        if t, err := time.Parse(layout, cell); err == nil {
            return midnight(t), true
        }
    }
    return time.Time{}, false
}

func midnight(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// stripBOM removes a UTF-8 byte-order mark so the first header name matches
// by literal comparison.  Spreadsheet exports prepend one routinely.
func stripBOM(r io.Reader) io.Reader {
    br := bufio.NewReader(r)
    head, err := br.Peek(3)
    if err == nil && bytes.Equal(head, []byte{0xEF, 0xBB, 0xBF}) {
        _, _ = br.Discard(3)
    }
    return br
}
