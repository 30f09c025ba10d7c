// Package cli provides the interactive MyBank console.
//
// It wires configuration, the local session store, the backend client and
// one role dashboard behind a REPL. Typical flow: look up a stored session
// for the configured role, prompt for credentials if there is none, then
// dispatch role commands until the user exits.
//
// Commands by role:
//   - everyone: login, logout, go, pages, whoami
//   - customer: home, profile, edit-profile, deposit, withdraw, transfer,
//     transactions, password; before login also forgot, register and
//     applications
//   - teller: processed, customers, search, edit-customer, deposit,
//     withdraw, transfer, create-customer, create-account, details
//   - admin: customers, search-customers, tellers, branches, transactions
//     with their edit, delete and create commands
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and TermRenderer for details.
package cli
