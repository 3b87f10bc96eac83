package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")
	message.SetString(lang, PageTitleKey, "Treinador de Blackjack: Pedir ou Parar")
	message.SetString(lang, PageIntroKey, "Jogue cada mão e veja se sua escolha bate com a tabela de estratégia básica.")
	message.SetString(lang, DealerLabelKey, "Banca")
	message.SetString(lang, PlayerLabelKey, "Jogador")
	message.SetString(lang, TotalLabelKey, "Total")
	message.SetString(lang, HitButtonKey, "Pedir")
	message.SetString(lang, StandButtonKey, "Parar")
	message.SetString(lang, NewRoundButtonKey, "Nova rodada")
	message.SetString(lang, SessionAccuracyKey, "Acerto na sessão")
	message.SetString(lang, AllTimeAccuracyKey, "Acerto geral")
	message.SetString(lang, FeedbackCorrectKey, "Certo! A tabela diz")
	message.SetString(lang, FeedbackWrongKey, "Quase. A tabela diz")
	message.SetString(lang, FeedbackSkippedKey, "Sem linha na tabela para esta mão; não contou.")
	message.SetString(lang, LanguageLabelKey, "Idioma")
	message.SetString(lang, RequestFailedKey, "Algo deu errado. Tente novamente.")
	message.SetString(lang, NoscriptKey, "Este treinador precisa de JavaScript.")
}
