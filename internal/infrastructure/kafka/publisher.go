// Package kafka journal des changements de statut de commande sur un topic Kafka.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/famadiop1025/Bokkdej/internal/application/notify"
)

var _ notify.EventPublisher = (*Publisher)(nil)

// Publisher publie les événements en JSON, clé = identifiant de commande pour
// garder l'ordre des transitions d'une même commande sur la même partition.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher construit le publieur sur le topic donné.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// Publish écrit l'événement sur le topic.
func (p *Publisher) Publish(ctx context.Context, ev notify.StatusChangedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: payload,
	})
}

// Close ferme le writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
