// Package cli provides the interactive citizen portal command-line client.
//
// It wires configuration, the gRPC client and the session publisher, loads
// the public portal settings and runs a REPL until the user exits. A
// background publisher polls the session every couple of seconds; in
// embedded mode each sign-in is announced on stdout as "login-success".
//
// Commands are grouped by who may run them: anyone (register, login,
// pages), signed-in citizens (balance, history, transfer, votes, requests,
// flights, documents) and administrators (adjust, vote and request
// administration, flight management). Type "help" for the list that
// applies to the current session.
package cli
