package client

import (
	"errors"
	"fmt"
)

// Kind classifica a falha de uma chamada remota
type Kind int

const (
	// KindTransport: rede indisponível, corpo ilegível ou malformado
	KindTransport Kind = iota
	// KindRejected: o serviço recusou a requisição (4xx), corrigível pelo usuário
	KindRejected
	// KindServer: falha do serviço (5xx)
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindServer:
		return "server"
	}
	return "transport"
}

// Error é o único tipo de erro que sai do cliente.
// Status é 0 quando a falha aconteceu antes de haver uma resposta.
type Error struct {
	Op      string
	Status  int
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// IsRejection indica uma recusa de domínio (saldo, jogo travado, usuário duplicado...)
func IsRejection(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindRejected
}

// StatusOf devolve o status HTTP associado ao erro, 0 se não houver
func StatusOf(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Status
	}
	return 0
}

func transportError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindTransport, Message: "request failed", Err: err}
}

func statusError(op string, status int, detail string) *Error {
	kind := KindServer
	if status < 500 {
		kind = KindRejected
	}
	msg := detail
	if msg == "" {
		msg = fmt.Sprintf("request failed: %d", status)
	}
	return &Error{Op: op, Status: status, Kind: kind, Message: msg}
}
