package support

import (
	"strings"

	"barbershop/models"
)

var articles = []models.SupportArticle{
	{ID: "primeiros-passos", Category: "inicio", Title: "Primeiros passos", Content: "Cadastre seus serviços e profissionais antes de divulgar o link de agendamento."},
	{ID: "link-agendamento", Category: "inicio", Title: "Compartilhando o link de agendamento", Content: "Cada barbearia tem um endereço próprio. Envie-o aos clientes pelo WhatsApp ou redes sociais."},
	{ID: "formas-pagamento", Category: "pagamentos", Title: "Configurando formas de pagamento", Content: "Ative Pix, cartão ou dinheiro em Configurações > Pagamentos. Pix exige uma chave cadastrada."},
	{ID: "pagamento-cartao", Category: "pagamentos", Title: "Pagamentos com cartão", Content: "Pagamentos com cartão são confirmados no momento do agendamento."},
	{ID: "lembretes", Category: "notificacoes", Title: "Lembretes de horário", Content: "Defina com quantos minutos de antecedência o lembrete deve ser gerado."},
	{ID: "relatorios", Category: "relatorios", Title: "Entendendo os relatórios", Content: "Os relatórios mostram faturamento, ticket médio e desempenho por serviço e profissional."},
}

// Articles returns the help center entries, optionally filtered by category.
func Articles(category string) []models.SupportArticle {
	category = strings.TrimSpace(strings.ToLower(category))
	out := make([]models.SupportArticle, 0, len(articles))
	for _, a := range articles {
		if category == "" || a.Category == category {
			out = append(out, a)
		}
	}
	return out
}
