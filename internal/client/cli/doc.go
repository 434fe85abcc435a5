// Package cli provides the interactive globalstats command-line client.
//
// It wires configuration, the local identity store, the REST client and the
// statistics and leaderboard services behind a small REPL:
//
//	share key=value... [-name N] [-id X]   submit statistics
//	get                                    fetch the remembered record
//	link [id]                              request an account link handshake
//	board <id> [limit]                     show the top of a leaderboard
//	section <id>                           show the ranks around this player
//	stats                                  show cached statistics
//	whoami                                 show the remembered id and name
//	metrics                                dump request metrics
//	help | exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
