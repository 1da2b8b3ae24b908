// Package storage writes and reads the artifacts of a survey run.
//
// A run leaves two files in the output directory: report.json, the full
// pipeline report, and credits.parquet, one row per (route, climber) credit
// for loading into dataframe tools. Reports are outputs, not state: nothing
// here is read back by the next run. The default location is
// ~/.local/share/elcap-firsts/.
package storage
