package dto

import (
	"encoding/json"
	"strings"
)

// ErrorResponse é o corpo de erro do serviço: {"detail": "..."}.
// Em erros de validação detail vem como lista [{"loc": [...], "msg": "..."}].
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

// Message extrai um texto legível de detail; vazio quando não há
func (e ErrorResponse) Message() string {
	if len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var issues []validationIssue
	if err := json.Unmarshal(e.Detail, &issues); err == nil {
		for _, it := range issues {
			if m := strings.TrimSpace(it.Msg); m != "" {
				return m
			}
		}
	}
	return ""
}

type HealthResponse struct {
	Status string `json:"status"`
}
