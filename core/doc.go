// Package core contains app-wide contracts and routing.
//
// Allowed here:
// - the Screen contract, the screen stack and the host model routing messages to it
// - message contracts shared between screens and the host
// - key registry, status bar and footer rendering
//
// Not allowed here:
// - concrete screen rendering (see internal/onboarding)
// - carousel, gesture or animation state
package core
