// Package notifier posts a survey's leaderboard to social platforms.
//
// The Twitter notifier authenticates with OAuth1 user credentials and posts
// the leaderboard as a thread, each tweet within the 280 character limit.
// The dry-run notifier prints the same thread instead of posting it.
package notifier
