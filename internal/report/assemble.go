package report

import (
	"context"
	"log/slog"

	"github.com/alertscope/alertscope/internal/alertapi"
	"github.com/alertscope/alertscope/internal/swis"
)

// Lookup returns the candidate alerts for one element.
type Lookup interface {
	CandidatesFor(ctx context.Context, el swis.Element) (alertapi.Result, error)
}

// Stats summarises one assembly run. Every element lands in exactly one of
// WithAlerts, Empty or Failed.
type Stats struct {
	Elements   int
	WithAlerts int
	Empty      int
	Failed     int
	Records    int
}

// Report is the ordered, append-only set of assembled records.
type Report struct {
	records []*Record
}

// Records returns the assembled records in assembly order.
func (r *Report) Records() []*Record {
	return r.records
}

// Len returns the number of records.
func (r *Report) Len() int {
	return len(r.records)
}

// Assemble visits elements strictly in order and, for each alert row the
// lookup returns, appends one flattened record: the element's ten identity
// and sub-element fields first, then the alert's fields, which override on
// a name collision. An element with zero candidate alerts contributes no
// records. A failed lookup is logged with the element's URI and skipped;
// per-element isolation is the run's only fault tolerance.
func Assemble(ctx context.Context, elements []swis.Element, lookup Lookup) (*Report, Stats) {
	rep := &Report{}
	stats := Stats{Elements: len(elements)}

	for _, el := range elements {
		res, err := lookup.CandidatesFor(ctx, el)
		if err != nil {
			slog.Warn("report: alert lookup failed, skipping element", "uri", el.URI, "err", err)
			stats.Failed++
			continue
		}
		if res.Empty() {
			stats.Empty++
			continue
		}
		stats.WithAlerts++
		for _, row := range res.Rows {
			rec := newElementRecord(el)
			for i, col := range res.Columns {
				if i < len(row) {
					rec.Set(col, row[i])
				}
			}
			rep.records = append(rep.records, rec)
		}
	}

	stats.Records = len(rep.records)
	return rep, stats
}

// newElementRecord seeds a record with the element's identity and
// sub-element fields, in the fixed column order shared by all records.
func newElementRecord(el swis.Element) *Record {
	rec := NewRecord()
	rec.Set("NodeID", el.NodeID)
	rec.Set("Caption", el.Caption)
	rec.Set("IPAddress", el.IPAddress)
	rec.Set("Vendor", el.Vendor)
	rec.Set("Uri", el.URI)
	rec.Set("InstanceType", el.InstanceType)
	rec.Set("SubElementID", el.SubElementID)
	rec.Set("SubElementName", el.SubElementName)
	rec.Set("SubElementType", el.SubElementType)
	rec.Set("SubElementTypeDescription", el.SubElementTypeDescription)
	return rec
}
