// Package cli provides the interactive koywe command-line client.
//
// It prompts for any credentials the configuration lacks, builds a
// koywe.Client and runs a REPL over it. The REPL is started with App.Run,
// which blocks until the user exits or input ends.
//
// Commands:
//   - login, logout, status
//   - documents [page] [limit], document <id>, delete-document <id>
//   - account <id>, create-account
//   - help, exit
package cli
