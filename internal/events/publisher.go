// Package events публикует доменные события пользователей в RabbitMQ.
// События потребляет сервис рекомендаций, чтобы пересчитывать подборки
// после изменения профиля. Публикация best-effort: её сбой логируется
// вызывающей стороной и не проваливает исходный запрос.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Ключи маршрутизации публикуемых событий.
const (
	UserCreated        = "user.created"
	UserUpdated        = "user.updated"
	UserDeleted        = "user.deleted"
	UserProfileUpdated = "user.profile_updated"
)

// UserEvent — тело сообщения о изменении пользователя.
type UserEvent struct {
	Event      string    `json:"event"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher держит соединение и канал RabbitMQ с объявленным topic-обменником.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// New подключается к RabbitMQ и объявляет durable topic-обменник.
func New(url, exchange string) (*Publisher, error) {
	const op = "events.New"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish отправляет событие event для пользователя userID
// с ключом маршрутизации, равным имени события.
func (p *Publisher) Publish(event, userID string) error {
	const op = "events.Publish"
	body, err := json.Marshal(UserEvent{
		Event:      event,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		event,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
