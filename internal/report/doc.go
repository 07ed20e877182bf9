// Package report renders computed statistics as human-readable text and
// CSV files. The text writer produces per-series and pooled summaries;
// the CSV writer emits one row per summary (or per decade bucket) for
// downstream tooling.
package report
