// Package models defines the wire and view types exchanged with the
// globalstats service: access tokens, statistic values, leaderboards,
// ranked sections and link handshakes.
package models
