// Package common contains shared constants and sentinel errors used across
// MyBank console components.
package common

// Placeholder is rendered in place of missing or null values.
const Placeholder = "—"

// NetworkErrorMessage is shown for transport and parse failures.
const NetworkErrorMessage = "Network error."

// DefaultPage is the page every dashboard enters after the session gate.
const DefaultPage = "home"
