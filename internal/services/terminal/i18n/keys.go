// Package i18n registers the terminal trainer copy with golang.org/x/text.
//
// Outcome labels such as "WIN (dealer busted)" are fixed strings and are not
// part of these catalogs.
package i18n

const (
	HeaderTitleKey       = "terminal.header.title"
	HeaderConfigKey      = "terminal.header.config"
	ShuffleKey           = "terminal.shuffle"
	DealerLabelKey       = "terminal.table.dealer"
	PlayerLabelKey       = "terminal.table.player"
	SoftTagKey           = "terminal.table.soft"
	PromptActionKey      = "terminal.prompt.action"
	PromptInvalidKey     = "terminal.prompt.invalid"
	PromptAgainKey       = "terminal.prompt.again"
	DealerHitsKey        = "terminal.dealer.hits"
	DealerStandsKey      = "terminal.dealer.stands"
	ResultKey            = "terminal.result"
	SummaryTitleKey      = "terminal.summary.title"
	SummaryCountedKey    = "terminal.summary.counted"
	SummaryCorrectKey    = "terminal.summary.correct"
	SummaryAccuracyKey   = "terminal.summary.accuracy"
	SummaryNoAccuracyKey = "terminal.summary.accuracy_na"
	SummarySkippedKey    = "terminal.summary.skipped"
	SummaryAllTimeKey    = "terminal.summary.all_time"
	SummaryAllTimeNAKey  = "terminal.summary.all_time_na"
	SummaryAllTimeErrKey = "terminal.summary.all_time_unavailable"
	GoodbyeKey           = "terminal.goodbye"
	ChartUnavailableKey  = "terminal.error.chart_unavailable"
	DecisionFailedKey    = "terminal.error.decision_failed"
)
