// Package publisher emite eventos de aposta aceita para o Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/betsim/internal/domain"
	"github.com/radieske/betsim/pkg/contracts/events"
)

// MessageWriter é o subconjunto de *kafka.Writer usado aqui
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	Writer MessageWriter
	Topic  string

	// DLQ recebe o evento quando a escrita no tópico principal falha; opcional
	DLQ      MessageWriter
	DLQTopic string

	log *zap.Logger
	now func() time.Time
}

func NewKafkaPublisher(w MessageWriter, topic string, log *zap.Logger) *KafkaPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &KafkaPublisher{Writer: w, Topic: topic, log: log, now: time.Now}
}

// WithDLQ liga o envio para a dead letter queue
func (p *KafkaPublisher) WithDLQ(w MessageWriter, topic string) *KafkaPublisher {
	p.DLQ, p.DLQTopic = w, topic
	return p
}

// PublishBetPlaced grava o evento com key = user_id, mantendo a ordem por usuário
func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	if e.TsUnixMs == 0 {
		e.TsUnixMs = p.now().UnixMilli()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode bet_placed: %w", err)
	}
	msg := kafka.Message{Key: []byte(e.UserID), Value: b}
	if err := p.Writer.WriteMessages(ctx, msg); err != nil {
		p.deadLetter(ctx, msg, err)
		return fmt.Errorf("publish bet_placed: %w", err)
	}
	p.log.Debug("bet_placed published", zap.String("bet_id", e.BetID), zap.String("topic", p.Topic))
	return nil
}

func (p *KafkaPublisher) deadLetter(ctx context.Context, msg kafka.Message, cause error) {
	if p.DLQ == nil {
		return
	}
	msg.Headers = append(msg.Headers, kafka.Header{Key: "error", Value: []byte(cause.Error())})
	if err := p.DLQ.WriteMessages(ctx, msg); err != nil {
		p.log.Error("dlq write failed", zap.String("topic", p.DLQTopic), zap.Error(err))
		return
	}
	p.log.Warn("bet_placed sent to dlq", zap.String("topic", p.DLQTopic), zap.Error(cause))
}

func (p *KafkaPublisher) Close() error {
	err := p.Writer.Close()
	if p.DLQ != nil {
		err = errors.Join(err, p.DLQ.Close())
	}
	return err
}

// Noop descarta os eventos; usado quando não há brokers configurados
type Noop struct{}

func (Noop) PublishBetPlaced(context.Context, events.BetPlaced) error { return nil }

func (Noop) Close() error { return nil }

// BetPlacedEvent monta o evento a partir da aposta devolvida pelo serviço
func BetPlacedEvent(b domain.Bet) events.BetPlaced {
	return events.BetPlaced{
		BetID:           b.ID,
		UserID:          b.UserID,
		GameID:          b.GameID,
		BetType:         string(b.BetType),
		Selection:       string(b.Selection),
		Odds:            b.Odds.String(),
		Stake:           b.Stake.StringFixed(2),
		StakeCents:      b.Stake.Shift(2).Round(0).IntPart(),
		PotentialPayout: b.PotentialPayout.StringFixed(2),
	}
}
