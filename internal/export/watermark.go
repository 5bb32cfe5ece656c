// Package export serializes validated datasets back to CSV with a
// per-request watermark column for traceability.  Nothing is persisted; the
// caller owns the returned blob.
package export

import (
    "bytes"
    "crypto/sha256"
    "encoding/csv"
    "encoding/hex"
    "fmt"
    "time"

    "github.com/tdmsuite/insights/internal/model"
)

// watermarkColumn is appended as the last column of every export.
const watermarkColumn = "_watermark"

// tokenLen is the length of the hex watermark embedded in each export.
const tokenLen = 16

// WatermarkToken derives the 16-hex-character fingerprint for one export:
// a truncated SHA-256 over the user identifier and the request timestamp at
// full sub-second precision.  Two exports by the same user in rapid
// succession still differ as long as their timestamps do.
func WatermarkToken(userID string, at time.Time) string {
    seed := fmt.Sprintf("%s_%s", userID, at.UTC().Format(time.RFC3339Nano))
    sum := sha256.Sum256([]byte(seed))
    return hex.EncodeToString(sum[:])[:tokenLen]
}

// WatermarkCSV serializes the dataset with the watermark column appended to
// every row and returns the blob together with the token it was stamped
// with.  Column order follows the original upload; the date cell is already
// canonical YYYY-MM-DD from ingestion.
func WatermarkCSV(ds *model.Dataset, userID string, at time.Time) ([]byte, string, error) {
    token := WatermarkToken(userID, at)

    var buf bytes.Buffer
    w := csv.NewWriter(&buf)

    header := append(append([]string{}, ds.Columns...), watermarkColumn)
    if err := w.Write(header); err != nil {
        return nil, "", fmt.Errorf("write header: %w", err)
    }

    row := make([]string, len(ds.Columns)+1)
    for _, rec := range ds.Records {
        for i, col := range ds.Columns {
            row[i] = rec.Values[col]
        }
        row[len(row)-1] = token
        if err := w.Write(row); err != nil {
            return nil, "", fmt.Errorf("write row: %w", err)
        }
    }

    w.Flush()
    if err := w.Error(); err != nil {
        return nil, "", fmt.Errorf("flush: %w", err)
    }
    return buf.Bytes(), token, nil
}
