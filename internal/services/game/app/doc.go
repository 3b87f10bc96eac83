// Package app composes the game storage and chart for the front ends.
//
// Both the terminal and web commands open a store through OpenStore, make sure
// the configured chart has rows with EnsureChart, and start a play session
// with StartSession before dealing.
package app
