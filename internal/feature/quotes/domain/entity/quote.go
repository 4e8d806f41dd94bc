// Package entity defines the domain models for the quotes feature.
package entity

import "time"

// Quote is a realtime market quote for one symbol. Quotes are always
// externally sourced and never persisted.
type Quote struct {
	Symbol        string    // Normalized symbol without exchange prefix (e.g. "AAPL")
	Current       float64   // Last traded price
	High          float64   // Day high
	Low           float64   // Day low
	Open          float64   // Day open
	PreviousClose float64   // Previous session close
	ChangeAbs     float64   // Current - PreviousClose
	ChangePct     float64   // ChangeAbs / PreviousClose * 100
	Timestamp     time.Time // Provider-reported quote time
}
