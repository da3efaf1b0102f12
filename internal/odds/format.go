package odds

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/radieske/betsim/internal/domain"
)

// Placeholder é exibido quando o mercado está ausente ou o valor não é numérico
const Placeholder = "-"

// Format converte odds americanas para texto de exibição.
// Nunca falha: ausente ou inválido vira Placeholder, >= 0 ganha "+".
func Format(q domain.Quote) string {
	d, ok := q.Decimal()
	if !ok {
		return Placeholder
	}
	return FormatDecimal(d)
}

// FormatString aplica Format a um texto cru; "" é tratado como ausente
func FormatString(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return Placeholder
	}
	return Format(domain.NewQuote(raw))
}

// FormatDecimal formata um valor já interpretado ("150.00" -> "+150")
func FormatDecimal(d decimal.Decimal) string {
	if d.Sign() >= 0 {
		return "+" + d.String()
	}
	return d.String()
}

// FormatLine formata a linha de um mercado. Handicap leva sinal explícito,
// total de pontos é exibido como veio.
func FormatLine(q domain.Quote, signed bool) string {
	d, ok := q.Decimal()
	if !ok {
		return Placeholder
	}
	if signed {
		return FormatDecimal(d)
	}
	return d.String()
}
