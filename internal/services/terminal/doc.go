// Package terminal runs the interactive hit/stand trainer over a line-based
// reader and writer.
//
// One Game is one play session: it deals rounds until the player quits,
// logs every decision to the store and prints session and all-time accuracy
// at the end. Blocking line reads are the only suspension points.
package terminal
