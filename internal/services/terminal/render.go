package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/terminal/i18n"
	"github.com/pterm/pterm"
	"golang.org/x/text/message"
)

// renderer formats table state and summaries with pterm styles.
type renderer struct {
	out     io.Writer
	printer *message.Printer
}

func (r renderer) line(text string) {
	fmt.Fprintln(r.out, text)
}

func (r renderer) header(chartID int64, numDecks int, hitsSoft17 bool) {
	fmt.Fprint(r.out, pterm.DefaultHeader.Sprintln(r.printer.Sprintf(i18n.HeaderTitleKey)))
	r.line(pterm.Gray(r.printer.Sprintf(i18n.HeaderConfigKey, chartID, numDecks, hitsSoft17)))
}

func (r renderer) notice(key string) {
	r.line(pterm.LightYellow(r.printer.Sprintf(key)))
}

func (r renderer) failure(key string) {
	r.line(pterm.LightRed(r.printer.Sprintf(key)))
}

// table prints both hands. A hidden hole card shows as "??" and the dealer
// total is withheld.
func (r renderer) table(player, dealer blackjack.Hand, hideHole bool) {
	r.line("")
	dealerLabel := r.printer.Sprintf(i18n.DealerLabelKey)
	if hideHole && len(dealer) > 0 {
		r.line(pterm.LightMagenta(fmt.Sprintf("%s: %s ??", dealerLabel, dealer[0])))
	} else {
		r.line(pterm.LightMagenta(fmt.Sprintf("%s: %s", dealerLabel, r.hand(dealer))))
	}
	r.line(pterm.LightCyan(fmt.Sprintf("%s: %s", r.printer.Sprintf(i18n.PlayerLabelKey), r.hand(player))))
	r.line("")
}

func (r renderer) hand(h blackjack.Hand) string {
	total, soft := h.Totals()
	tag := ""
	if soft {
		tag = r.printer.Sprintf(i18n.SoftTagKey)
	}
	return fmt.Sprintf("%s  => %d%s", strings.Join(h.Strings(), " "), total, tag)
}

func (r renderer) result(outcome blackjack.Outcome) {
	text := r.printer.Sprintf(i18n.ResultKey, outcome.Label())
	switch outcome.Result() {
	case blackjack.ResultWin:
		r.line(pterm.LightGreen(text))
	case blackjack.ResultLose:
		r.line(pterm.LightRed(text))
	default:
		r.line(pterm.LightYellow(text))
	}
}

// summary prints session accuracy and, when known, the chart's all-time tally.
func (r renderer) summary(session accuracy.Stats, chartID int64, allTime *accuracy.Stats) {
	lines := []string{
		r.printer.Sprintf(i18n.SummaryCountedKey, session.Counted),
		r.printer.Sprintf(i18n.SummaryCorrectKey, session.Correct),
	}
	if ratio, ok := session.Accuracy(); ok {
		lines = append(lines, r.printer.Sprintf(i18n.SummaryAccuracyKey, ratio*100))
	} else {
		lines = append(lines, r.printer.Sprintf(i18n.SummaryNoAccuracyKey))
	}
	lines = append(lines, r.printer.Sprintf(i18n.SummarySkippedKey, session.Skipped))

	switch {
	case allTime == nil:
		lines = append(lines, r.printer.Sprintf(i18n.SummaryAllTimeErrKey))
	default:
		if ratio, ok := allTime.Accuracy(); ok {
			lines = append(lines, r.printer.Sprintf(i18n.SummaryAllTimeKey, chartID, allTime.Correct, allTime.Counted, ratio*100))
		} else {
			lines = append(lines, r.printer.Sprintf(i18n.SummaryAllTimeNAKey, chartID))
		}
	}

	box := pterm.DefaultBox.WithTitle(r.printer.Sprintf(i18n.SummaryTitleKey)).WithTitleTopCenter()
	r.line("")
	r.line(box.Sprint(strings.Join(lines, "\n")))
	r.line("")
}
