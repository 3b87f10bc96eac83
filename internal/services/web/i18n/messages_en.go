package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English
	message.SetString(lang, PageTitleKey, "Blackjack Hit/Stand Trainer")
	message.SetString(lang, PageIntroKey, "Play each hand and see whether your choice matches the basic strategy chart.")
	message.SetString(lang, DealerLabelKey, "Dealer")
	message.SetString(lang, PlayerLabelKey, "Player")
	message.SetString(lang, TotalLabelKey, "Total")
	message.SetString(lang, HitButtonKey, "Hit")
	message.SetString(lang, StandButtonKey, "Stand")
	message.SetString(lang, NewRoundButtonKey, "New round")
	message.SetString(lang, SessionAccuracyKey, "Session accuracy")
	message.SetString(lang, AllTimeAccuracyKey, "All-time accuracy")
	message.SetString(lang, FeedbackCorrectKey, "Correct! The chart says")
	message.SetString(lang, FeedbackWrongKey, "Not quite. The chart says")
	message.SetString(lang, FeedbackSkippedKey, "No chart row for this hand; not counted.")
	message.SetString(lang, LanguageLabelKey, "Language")
	message.SetString(lang, RequestFailedKey, "Something went wrong. Try again.")
	message.SetString(lang, NoscriptKey, "This trainer needs JavaScript enabled.")
}
