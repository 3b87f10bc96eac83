// Package web serves the browser front end of the hit/stand trainer.
//
// Every request rebuilds its round from the play session's stored carrier,
// so the process keeps no per-player state in memory. Requests of one
// session are serialized with a keyed lock; different sessions proceed in
// parallel against the shared store.
package web
