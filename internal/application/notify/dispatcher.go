// Package notify diffuse les événements de changement de statut vers les
// puits push, SMS et journal. Tout est best-effort : un échec de livraison est
// consigné et n'affecte jamais la transition qui l'a déclenché.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/famadiop1025/Bokkdej/pkg/logger"
)

// StatusChangedEvent événement levé explicitement par le moteur de transition
// (pas de hook implicite à la sauvegarde : la dépendance reste visible et
// testable isolément).
type StatusChangedEvent struct {
	OrderID      string    `json:"order_id"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	FromStatus   string    `json:"from_status"`
	ToStatus     string    `json:"to_status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Delivery destinataires d'un événement. Les jetons vides sont sautés en
// silence ; SMSPhone vide = pas de SMS.
type Delivery struct {
	PushTokens []string
	PushTitle  string
	PushBody   string
	SMSPhone   string
	SMSBody    string
}

// PushSender puits de notification push.
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string) error
}

// SMSSender puits SMS.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// EventPublisher journal des événements (Kafka).
type EventPublisher interface {
	Publish(ctx context.Context, ev StatusChangedEvent) error
}

// Dispatcher fan-out best-effort. Chaque livraison est tentée indépendamment,
// sans garantie d'ordre entre destinataires, avec un budget de temps borné.
type Dispatcher struct {
	push    PushSender     // nil = puits désactivé
	sms     SMSSender      // nil = puits désactivé
	journal EventPublisher // nil = journal désactivé
	timeout time.Duration
	log     *logger.Logger

	// wg permet aux tests d'attendre la fin des livraisons asynchrones.
	wg sync.WaitGroup
}

// NewDispatcher construit le dispatcher. Les puits à nil sont ignorés.
func NewDispatcher(push PushSender, sms SMSSender, journal EventPublisher, timeout time.Duration, log *logger.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{push: push, sms: sms, journal: journal, timeout: timeout, log: log}
}

// Dispatch lance la diffusion en arrière-plan. La transition est déjà
// commise : rien ici ne peut bloquer la réponse HTTP ni la faire échouer.
func (d *Dispatcher) Dispatch(ev StatusChangedEvent, delivery Delivery) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		// Contexte détaché de la requête : la diffusion survit à la réponse.
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.deliver(ctx, ev, delivery)
	}()
}

// Wait bloque jusqu'à la fin des livraisons en cours (tests).
func (d *Dispatcher) Wait() { d.wg.Wait() }

func (d *Dispatcher) deliver(ctx context.Context, ev StatusChangedEvent, delivery Delivery) {
	if d.journal != nil {
		if err := d.journal.Publish(ctx, ev); err != nil {
			d.log.Warn().Err(err).Str("order_id", ev.OrderID).Msg("publication journal des statuts")
		}
	}
	if d.push != nil {
		for _, token := range delivery.PushTokens {
			if token == "" {
				continue
			}
			if err := d.push.SendPush(ctx, token, delivery.PushTitle, delivery.PushBody); err != nil {
				d.log.Warn().Err(err).Str("order_id", ev.OrderID).Msg("envoi notification push")
			}
		}
	}
	if d.sms != nil && delivery.SMSPhone != "" {
		if err := d.sms.SendSMS(ctx, delivery.SMSPhone, delivery.SMSBody); err != nil {
			d.log.Warn().Err(err).Str("order_id", ev.OrderID).Str("phone", delivery.SMSPhone).Msg("envoi SMS")
		}
	}
}
