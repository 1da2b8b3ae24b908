// Package cli implements the command-line interface for elcap-firsts.
//
// The root command loads .env and the layered configuration before any
// subcommand runs. Subcommands:
//
//	run      survey an area end to end and save the report, parquet export and chart
//	extract  split and clean attribution strings given as arguments or on stdin
//	chart    redraw the chart from a saved report
//	config   show the effective configuration or write a default file
//	version  print the version
//
// Results go to stdout as text, JSON or YAML; logs go to stderr.
package cli
