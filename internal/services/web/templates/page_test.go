package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func render(t *testing.T, view PageView) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Page(view).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestPageRendersEnglishCopy(t *testing.T) {
	t.Parallel()

	html := render(t, NewPageView(language.English))
	for _, want := range []string{
		`<html lang="en">`,
		"Blackjack Hit/Stand Trainer",
		`id="btnHit"`,
		`id="btnStand"`,
		`id="btnNew"`,
		`id="dealerCards"`,
		`id="playerTotal"`,
		`src="/static/app.js"`,
		`<option value="en" selected>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestPageRendersPortugueseCopy(t *testing.T) {
	t.Parallel()

	html := render(t, NewPageView(language.MustParse("pt-BR")))
	for _, want := range []string{`<html lang="pt-BR">`, "Pedir", "Parar", "Nova rodada", `<option value="pt-BR" selected>`} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestPageEscapesCopy(t *testing.T) {
	t.Parallel()

	view := NewPageView(language.English)
	view.Title = `<script>alert(1)</script>`
	html := render(t, view)
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatal("expected title to be escaped")
	}
}

func TestSeatRendersTableSlots(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := seat("dealer", "Dealer", "Total").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<section class="seat" id="dealer"><h2>Dealer</h2><div class="cards" id="dealerCards"></div><p>Total: <span id="dealerTotal">-</span></p></section>`
	if got := buf.String(); got != want {
		t.Fatalf("seat =\n%s\nwant\n%s", got, want)
	}
}

func TestPageStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := Page(NewPageView(language.English)).Render(ctx, &buf); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}

func TestLanguageSwitcherMarksOnlySelected(t *testing.T) {
	t.Parallel()

	html := render(t, NewPageView(language.English))
	if !strings.Contains(html, `<option value="pt-BR">`) {
		t.Fatalf("expected unselected pt-BR option: %s", html)
	}
}
