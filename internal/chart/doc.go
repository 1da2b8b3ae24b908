// Package chart draws first-ascent leaderboards as bar charts, either as a
// PNG image or as plain text for the terminal.
package chart
