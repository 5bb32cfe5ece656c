package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/tdmsuite/insights/internal/model"
)

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "valid upload",
			input: "date,tickets_sold\n2024-01-01,10\n2024-01-02,7\n",
		},
		{
			name:    "missing date column",
			input:   "dt,tickets_sold\n2024-01-01,10\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "every date unparseable",
			input:   "date,tickets_sold\nnot-a-date,10\nalso bad,7\n",
			wantErr: ErrNoValidRows,
		},
		{
			name:    "empty upload",
			input:   "",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "binary garbage header",
			input:   "\x00\x01\x02\x03\xff\xfe",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "ragged rows",
			input:   "date,tickets_sold\n2024-01-01\n",
			wantErr: ErrMalformedInput,
		},
		{
			name:    "broken quoting",
			input:   "date,tickets_sold\n\"2024-01-01,10\n",
			wantErr: ErrMalformedInput,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ds, err := Parse(strings.NewReader(tc.input))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(ds.Records) == 0 {
				t.Fatal("expected records")
			}
		})
	}
}

func TestParseNeverReturnsNullDates(t *testing.T) {
	in := "date,tickets_sold\n2024-01-01,10\ngarbage,5\n2024-01-02,7\n,3\n"
	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := len(ds.Records); got != 2 {
		t.Fatalf("want 2 surviving rows, got %d", got)
	}
	if ds.Dropped != 2 {
		t.Fatalf("want 2 dropped rows, got %d", ds.Dropped)
	}
	for _, rec := range ds.Records {
		if rec.Date.IsZero() {
			t.Fatal("validated record carries a zero date")
		}
	}
}

func TestParseFallbackLayouts(t *testing.T) {
	in := "date,tickets_sold\n2024/01/02,5\n01/03/2024,6\n2024-01-04 08:30:00,7\n"
	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ds.Records) != 3 {
		t.Fatalf("want 3 rows, got %d (dropped=%d)", len(ds.Records), ds.Dropped)
	}
	// Every surviving date cell is rewritten in canonical form.
	want := []string{"2024-01-02", "2024-01-03", "2024-01-04"}
	for i, rec := range ds.Records {
		if got := rec.Values[model.ColDate]; got != want[i] {
			t.Fatalf("row %d: want date cell %q, got %q", i, want[i], got)
		}
	}
}

func TestParseStripsBOM(t *testing.T) {
	in := "\xEF\xBB\xBFdate,tickets_sold\n2024-01-01,10\n"
	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !ds.HasColumn(model.ColDate) {
		t.Fatalf("BOM not stripped; columns: %v", ds.Columns)
	}
}

func TestRequireColumns(t *testing.T) {
	ds, err := Parse(strings.NewReader("date,visits\n2024-01-01,10\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := RequireColumns(ds, model.ColTicketsSold); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("want ErrMissingColumn, got %v", err)
	}
	if err := RequireColumns(ds, "visits"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
