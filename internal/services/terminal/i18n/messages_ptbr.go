package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, HeaderTitleKey, "Blackjack no Terminal (Precisão da Tabela)")
	message.SetString(lang, HeaderConfigKey, "Usando chart_id=%d | Baralhos=%d | Dealer pede no soft 17=%t")
	message.SetString(lang, ShuffleKey, "Embaralhando um novo sapato.")
	message.SetString(lang, DealerLabelKey, "Dealer")
	message.SetString(lang, PlayerLabelKey, "Jogador")
	message.SetString(lang, SoftTagKey, " (soft)")
	message.SetString(lang, PromptActionKey, "Pedir, Parar ou Sair? [h/s/q] ")
	message.SetString(lang, PromptInvalidKey, "Digite 'h' (pedir), 's' (parar) ou 'q' (sair).")
	message.SetString(lang, PromptAgainKey, "Jogar outra rodada? [y/n] ")
	message.SetString(lang, DealerHitsKey, "Dealer pede...")
	message.SetString(lang, DealerStandsKey, "Dealer para.")
	message.SetString(lang, ResultKey, "Resultado: %s")
	message.SetString(lang, SummaryTitleKey, "Sua Precisão em Pedir/Parar")
	message.SetString(lang, SummaryCountedKey, "Decisões contadas: %d")
	message.SetString(lang, SummaryCorrectKey, "Decisões corretas: %d")
	message.SetString(lang, SummaryAccuracyKey, "Precisão: %.1f%%")
	message.SetString(lang, SummaryNoAccuracyKey, "Precisão: N/D (nenhuma decisão encontrou linha na tabela)")
	message.SetString(lang, SummarySkippedKey, "Ignoradas (sem linha na tabela): %d")
	message.SetString(lang, SummaryAllTimeKey, "Histórico na tabela %d: %d/%d corretas (%.1f%%)")
	message.SetString(lang, SummaryAllTimeNAKey, "Histórico na tabela %d: N/D")
	message.SetString(lang, SummaryAllTimeErrKey, "Histórico de precisão indisponível.")
	message.SetString(lang, GoodbyeKey, "Até logo!")
	message.SetString(lang, ChartUnavailableKey, "Não foi possível ler a tabela de estratégia; encerrando a sessão.")
	message.SetString(lang, DecisionFailedKey, "Não foi possível salvar sua decisão; encerrando a sessão.")
}
