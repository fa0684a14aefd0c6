// Package report assembles the final element × candidate-alert report.
//
// Record is an ordered field-name → value mapping: element identity fields
// first, then the alert's dynamically discovered fields, which win on a
// name collision. Assemble walks the element list sequentially, calling the
// lookup once per element; zero-alert elements contribute nothing and a
// failed lookup is logged and skipped. WriteCSV and WriteJSON render the
// accumulated records, with the CSV header computed as the first-seen union
// of every record's fields.
package report
