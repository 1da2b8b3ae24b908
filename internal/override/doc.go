// Package override holds manual corrections for first-ascent extraction.
//
// The extraction heuristic fails on irregular attribution strings (several
// dates, nicknames with digits, hyphenated names). A Table maps a route, by its
// position in the route list or by its name, to the names that should be
// credited instead. Tables are plain data: they are loaded from YAML and passed
// explicitly to whatever applies them.
package override
