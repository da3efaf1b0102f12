package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote guarda um valor numérico de mercado exatamente como veio do serviço
// ("-150.00", 215.5 ou null). A conversão para número é preguiçosa: um Quote
// nunca falha no decode, e valores inválidos aparecem como ausentes em Decimal().
type Quote struct {
	raw string
	set bool
}

// NewQuote cria um Quote presente com o texto informado
func NewQuote(raw string) Quote { return Quote{raw: raw, set: true} }

// NoQuote representa mercado ausente
var NoQuote = Quote{}

// IsSet indica se o serviço enviou algum valor (mesmo que inválido)
func (q Quote) IsSet() bool { return q.set }

// Raw devolve o texto original
func (q Quote) Raw() string { return q.raw }

// Decimal interpreta o valor; ok=false para ausente ou não numérico
func (q Quote) Decimal() (decimal.Decimal, bool) {
	if !q.set {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(q.raw))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func (q Quote) String() string { return q.raw }

func (q *Quote) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*q = NoQuote
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			// string malformada vira valor inválido, não erro de decode
			*q = NewQuote(string(b))
			return nil
		}
		*q = NewQuote(s)
		return nil
	}
	*q = NewQuote(string(b))
	return nil
}

func (q Quote) MarshalJSON() ([]byte, error) {
	if !q.set {
		return []byte("null"), nil
	}
	return json.Marshal(q.raw)
}
