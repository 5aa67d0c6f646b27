// Package stream рассылает события сессии и контактов подключённым клиентам.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/session"
	"github.com/sirupsen/logrus"
)

const (
	clientBuffer   = 64
	outboundBuffer = 256
	channelPattern = "safety:*:events"
)

type Hub struct {
	redis  *redis.Client
	logger *logrus.Logger
	now    func() time.Time

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}

	outbound chan outboundEvent
}

// Client - одно подключение пользователя
type Client struct {
	UserID string
	Send   chan []byte
}

type outboundEvent struct {
	userID  string
	payload []byte
}

// NewHub создает хаб. С Redis события идут через pub/sub и доходят до клиентов
// на всех инстансах, без Redis доставляются локально.
func NewHub(redisClient *redis.Client, logger *logrus.Logger) *Hub {
	return &Hub{
		redis:    redisClient,
		logger:   logger,
		now:      time.Now,
		clients:  map[string]map[*Client]struct{}{},
		outbound: make(chan outboundEvent, outboundBuffer),
	}
}

// Start запускает публикацию и подписку в Redis. Без Redis ничего не делает.
func (h *Hub) Start(ctx context.Context) error {
	if h.redis == nil {
		return nil
	}

	pubsub := h.redis.PSubscribe(ctx, channelPattern)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", channelPattern, err)
	}

	go h.publishLoop(ctx)
	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.deliver(userIDFromChannel(msg.Channel), []byte(msg.Payload))
			}
		}
	}()
	return nil
}

func (h *Hub) Register(userID string) *Client {
	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, clientBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][client] = struct{}{}
	return client
}

// Unregister отключает клиента и закрывает его канал. Повторный вызов безопасен.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userClients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := userClients[client]; !ok {
		return
	}
	delete(userClients, client)
	if len(userClients) == 0 {
		delete(h.clients, client.UserID)
	}
	close(client.Send)
}

// Broadcast отправляет событие всем клиентам пользователя. Не блокируется.
func (h *Hub) Broadcast(event Event) {
	if event.At.IsZero() {
		event.At = h.now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal stream event")
		return
	}

	if h.redis == nil {
		h.deliver(event.UserID, payload)
		return
	}

	select {
	case h.outbound <- outboundEvent{userID: event.UserID, payload: payload}:
	default:
		h.logger.WithFields(logrus.Fields{
			"user_id": event.UserID,
			"type":    event.Type,
		}).Warn("Stream outbound queue is full, dropping event")
	}
}

// ForUser возвращает слушателя сессии, пересылающего события в хаб
func (h *Hub) ForUser(userID string) session.Listener {
	return &userListener{hub: h, userID: userID}
}

// OnContactListChanged рассылает подтвержденный список контактов
func (h *Hub) OnContactListChanged(userID string, list models.ContactList) {
	if list == nil {
		list = models.ContactList{}
	}
	h.Broadcast(Event{Type: EventContactsChanged, UserID: userID, Contacts: &list})
}

// OnContactError рассылает ошибку неудачной мутации контактов
func (h *Hub) OnContactError(userID string, kind models.ErrorKind, message string) {
	h.Broadcast(Event{Type: EventError, UserID: userID, Error: &ErrorPayload{Kind: kind, Message: message}})
}

func (h *Hub) publishLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.outbound:
			if err := h.redis.Publish(ctx, redisChannel(ev.userID), ev.payload).Err(); err != nil {
				h.logger.WithError(err).WithField("user_id", ev.userID).Error("Failed to publish stream event")
			}
		}
	}
}

func (h *Hub) deliver(userID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			// медленный клиент теряет сообщение
		}
	}
}

func (h *Hub) clientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

type userListener struct {
	hub    *Hub
	userID string
}

func (l *userListener) OnStatusChanged(status models.SafetyStatus) {
	l.hub.Broadcast(Event{Type: EventStatusChanged, UserID: l.userID, Status: status})
}

func (l *userListener) OnCoordinate(c models.Coordinate) {
	l.hub.Broadcast(Event{Type: EventCoordinate, UserID: l.userID, Coordinate: &c})
}

func (l *userListener) OnError(kind models.ErrorKind, message string) {
	l.hub.Broadcast(Event{Type: EventError, UserID: l.userID, Error: &ErrorPayload{Kind: kind, Message: message}})
}

func redisChannel(userID string) string {
	return "safety:" + userID + ":events"
}

func userIDFromChannel(ch string) string {
	// safety:{user}:events
	const prefix = "safety:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
