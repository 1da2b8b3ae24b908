// Package ascent extracts first-ascentionist names from free-text attribution strings.
//
// Route pages credit a first ascent with a loosely formatted line such as
// "Warren Harding, Wayne Merry, George Whitmore, 1958". Split breaks that line
// into name-like tokens and Clean truncates the token list at the first sign of
// a trailing date or annotation. Clean is a heuristic: CleanWithConfidence
// reports how much guessing was involved so callers can decide which results
// need a manual override.
package ascent
