// Package sqlite implements the game storage contracts on SQLite through
// modernc.org/sqlite.
//
// Schema changes ship as embedded migrations applied on Open. Chart lookups
// are point reads on the chart_hit_stand primary key; accuracy aggregates
// are computed from the decisions table on demand.
package sqlite
