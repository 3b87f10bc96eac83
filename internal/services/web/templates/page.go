// Package templates renders the trainer's HTML shell. Components are
// written in page.templ and compiled with `templ generate`.
package templates

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	platformi18n "github.com/louisbranch/hitstand/internal/platform/i18n"
	"github.com/louisbranch/hitstand/internal/services/web/i18n"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag      string
	Label    string
	Selected bool
}

// PageView carries the localized copy of the page.
type PageView struct {
	Lang            string
	Title           string
	Intro           string
	Dealer          string
	Player          string
	Total           string
	Hit             string
	Stand           string
	NewRound        string
	SessionAccuracy string
	AllTimeAccuracy string
	FeedbackCorrect string
	FeedbackWrong   string
	FeedbackSkipped string
	RequestFailed   string
	LanguageLabel   string
	Noscript        string
	Languages       []LanguageOption
}

var languageLabels = map[string]string{
	"en":    "English",
	"pt-BR": "Português (Brasil)",
}

// NewPageView localizes the page for tag.
func NewPageView(tag language.Tag) PageView {
	p := platformi18n.Printer(tag)
	view := PageView{
		Lang:            tag.String(),
		Title:           sprint(p, i18n.PageTitleKey),
		Intro:           sprint(p, i18n.PageIntroKey),
		Dealer:          sprint(p, i18n.DealerLabelKey),
		Player:          sprint(p, i18n.PlayerLabelKey),
		Total:           sprint(p, i18n.TotalLabelKey),
		Hit:             sprint(p, i18n.HitButtonKey),
		Stand:           sprint(p, i18n.StandButtonKey),
		NewRound:        sprint(p, i18n.NewRoundButtonKey),
		SessionAccuracy: sprint(p, i18n.SessionAccuracyKey),
		AllTimeAccuracy: sprint(p, i18n.AllTimeAccuracyKey),
		FeedbackCorrect: sprint(p, i18n.FeedbackCorrectKey),
		FeedbackWrong:   sprint(p, i18n.FeedbackWrongKey),
		FeedbackSkipped: sprint(p, i18n.FeedbackSkippedKey),
		RequestFailed:   sprint(p, i18n.RequestFailedKey),
		LanguageLabel:   sprint(p, i18n.LanguageLabelKey),
		Noscript:        sprint(p, i18n.NoscriptKey),
	}
	for _, supported := range platformi18n.Supported() {
		code := supported.String()
		label := languageLabels[code]
		if label == "" {
			label = code
		}
		view.Languages = append(view.Languages, LanguageOption{Tag: code, Label: label, Selected: supported == tag})
	}
	return view
}

func sprint(p *message.Printer, key string) string {
	return p.Sprintf(key)
}
