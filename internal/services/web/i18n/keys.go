// Package i18n registers the web page copy with golang.org/x/text.
package i18n

const (
	PageTitleKey       = "web.page.title"
	PageIntroKey       = "web.page.intro"
	DealerLabelKey     = "web.table.dealer"
	PlayerLabelKey     = "web.table.player"
	TotalLabelKey      = "web.table.total"
	HitButtonKey       = "web.action.hit"
	StandButtonKey     = "web.action.stand"
	NewRoundButtonKey  = "web.action.new_round"
	SessionAccuracyKey = "web.accuracy.session"
	AllTimeAccuracyKey = "web.accuracy.all_time"
	FeedbackCorrectKey = "web.feedback.correct"
	FeedbackWrongKey   = "web.feedback.wrong"
	FeedbackSkippedKey = "web.feedback.skipped"
	LanguageLabelKey   = "web.language.label"
	RequestFailedKey   = "web.error.request_failed"
	NoscriptKey        = "web.noscript"
)
