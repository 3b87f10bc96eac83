package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, HeaderTitleKey, "Terminal Blackjack (Chart Accuracy)")
	message.SetString(lang, HeaderConfigKey, "Using chart_id=%d | Decks=%d | Dealer hits soft 17=%t")
	message.SetString(lang, ShuffleKey, "Shuffling a fresh shoe.")
	message.SetString(lang, DealerLabelKey, "Dealer")
	message.SetString(lang, PlayerLabelKey, "Player")
	message.SetString(lang, SoftTagKey, " (soft)")
	message.SetString(lang, PromptActionKey, "Hit, Stand, or Quit? [h/s/q] ")
	message.SetString(lang, PromptInvalidKey, "Please type 'h' (hit), 's' (stand), or 'q' (quit).")
	message.SetString(lang, PromptAgainKey, "Play another round? [y/n] ")
	message.SetString(lang, DealerHitsKey, "Dealer hits...")
	message.SetString(lang, DealerStandsKey, "Dealer stands.")
	message.SetString(lang, ResultKey, "Result: %s")
	message.SetString(lang, SummaryTitleKey, "Your Hit/Stand Accuracy")
	message.SetString(lang, SummaryCountedKey, "Counted decisions: %d")
	message.SetString(lang, SummaryCorrectKey, "Correct decisions: %d")
	message.SetString(lang, SummaryAccuracyKey, "Accuracy: %.1f%%")
	message.SetString(lang, SummaryNoAccuracyKey, "Accuracy: N/A (no decisions matched chart rows)")
	message.SetString(lang, SummarySkippedKey, "Skipped (no chart row found): %d")
	message.SetString(lang, SummaryAllTimeKey, "All-time on chart %d: %d/%d correct (%.1f%%)")
	message.SetString(lang, SummaryAllTimeNAKey, "All-time on chart %d: N/A")
	message.SetString(lang, SummaryAllTimeErrKey, "All-time accuracy unavailable.")
	message.SetString(lang, GoodbyeKey, "Goodbye!")
	message.SetString(lang, ChartUnavailableKey, "The strategy chart could not be read; ending the session.")
	message.SetString(lang, DecisionFailedKey, "Your decision could not be saved; ending the session.")
}
