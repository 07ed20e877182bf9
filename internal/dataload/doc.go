// Package dataload reads daily OHLCV price series from CSV and Excel
// files into domain records for the statistics engine.
//
// Loaders are deliberately tolerant: a malformed row is skipped with a
// warning and never aborts the file, and an unreadable file contributes
// nothing rather than failing a whole run. Records are sorted
// chronologically before they are returned, since return computation
// depends on adjacency.
//
// Two CSV layouts are accepted: the plain
// Date,Open,High,Low,Close,Volume form and the seven-column export
// variant with an Adj Close column between Close and Volume, which is
// parsed and discarded.
package dataload
