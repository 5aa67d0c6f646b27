package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/guardian/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	relayChannelPattern = "location:*:fixes"
	subscriptionBuffer  = 64
)

// relayMessage - формат сообщения в канале Redis
type relayMessage struct {
	Coordinate *models.Coordinate `json:"coordinate,omitempty"`
	Fault      string             `json:"fault,omitempty"`
}

// Relay - провайдер геолокации для фиксов, которые устройство присылает по HTTP.
// Если задан Redis, фиксы идут через pub/sub, и устройство может попасть на любой инстанс.
type Relay struct {
	redis  *redis.Client
	logger *logrus.Logger
	now    func() time.Time

	mu   sync.RWMutex
	subs map[string]map[*relaySubscription]struct{}
	last map[string]models.Coordinate
}

func NewRelay(redisClient *redis.Client, logger *logrus.Logger) *Relay {
	return &Relay{
		redis:  redisClient,
		logger: logger,
		now:    time.Now,
		subs:   map[string]map[*relaySubscription]struct{}{},
		last:   map[string]models.Coordinate{},
	}
}

// Start подписывается на канал Redis. Без Redis ничего не делает.
func (r *Relay) Start(ctx context.Context) error {
	if r.redis == nil {
		return nil
	}
	pubsub := r.redis.PSubscribe(ctx, relayChannelPattern)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to location relay: %w", err)
	}

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
				r.handleRedisMessage(msg)
			}
		}
	}()
	r.logger.Info("Location relay subscribed to Redis")
	return nil
}

func (r *Relay) Subscribe(userID string, opts Options) (Subscription, error) {
	if userID == "" {
		return nil, ErrUnsupported
	}

	s := &relaySubscription{
		relay:  r,
		userID: userID,
		ch:     make(chan Fix, subscriptionBuffer),
		kick:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	r.mu.Lock()
	if r.subs[userID] == nil {
		r.subs[userID] = map[*relaySubscription]struct{}{}
	}
	r.subs[userID][s] = struct{}{}
	cached, hasCached := r.last[userID]
	r.mu.Unlock()

	// Закэшированный фикс отдаём только если разрешено и он достаточно свежий
	if hasCached && opts.MaxAge > 0 && r.now().Sub(cached.ObservedAt) <= opts.MaxAge {
		s.send(Fix{Coordinate: cached})
	}

	if opts.Timeout > 0 {
		go s.watch(opts.Timeout)
	}
	return s, nil
}

// Push передает координату всем подпискам пользователя
func (r *Relay) Push(ctx context.Context, userID string, c models.Coordinate) error {
	if r.redis != nil {
		return r.publish(ctx, userID, relayMessage{Coordinate: &c})
	}
	r.dispatch(userID, Fix{Coordinate: c})
	return nil
}

// PushFault передает ошибку датчика, о которой сообщило устройство
func (r *Relay) PushFault(ctx context.Context, userID, message string) error {
	if r.redis != nil {
		return r.publish(ctx, userID, relayMessage{Fault: message})
	}
	r.dispatch(userID, Fix{Err: deviceFault(message)})
	return nil
}

func (r *Relay) publish(ctx context.Context, userID string, msg relayMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal relay message: %w", err)
	}
	if err := r.redis.Publish(ctx, relayChannel(userID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish location fix to Redis: %w", err)
	}
	return nil
}

func (r *Relay) handleRedisMessage(msg *redis.Message) {
	userID := userIDFromChannel(msg.Channel)
	if userID == "" {
		return
	}
	var m relayMessage
	if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
		r.logger.WithError(err).Warn("Failed to unmarshal relay message from Redis")
		return
	}
	switch {
	case m.Coordinate != nil:
		r.dispatch(userID, Fix{Coordinate: *m.Coordinate})
	case m.Fault != "":
		r.dispatch(userID, Fix{Err: deviceFault(m.Fault)})
	}
}

func (r *Relay) dispatch(userID string, fix Fix) {
	r.mu.Lock()
	if fix.Err == nil {
		r.last[userID] = fix.Coordinate
	}
	subs := make([]*relaySubscription, 0, len(r.subs[userID]))
	for s := range r.subs[userID] {
		subs = append(subs, s)
	}
	r.mu.Unlock()

	for _, s := range subs {
		if !s.send(fix) {
			r.logger.WithField("user_id", userID).Warn("Location subscriber is lagging, fix dropped")
		}
		if fix.Err == nil {
			s.resetTimeout()
		}
	}
}

func (r *Relay) remove(s *relaySubscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if userSubs, ok := r.subs[s.userID]; ok {
		delete(userSubs, s)
		if len(userSubs) == 0 {
			delete(r.subs, s.userID)
		}
	}
}

// subscribers возвращает число живых подписок пользователя
func (r *Relay) subscribers(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[userID])
}

type relaySubscription struct {
	relay  *Relay
	userID string
	ch     chan Fix
	kick   chan struct{}
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

func (s *relaySubscription) Fixes() <-chan Fix {
	return s.ch
}

func (s *relaySubscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.relay.remove(s)
	close(s.done)
	close(s.ch)
}

func (s *relaySubscription) send(fix Fix) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- fix:
		return true
	default:
		return false
	}
}

func (s *relaySubscription) resetTimeout() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// watch шлёт ошибку таймаута, если за timeout не пришло ни одного фикса, и взводится заново
func (s *relaySubscription) watch(timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-s.kick:
			timer.Reset(timeout)
		case <-timer.C:
			s.send(Fix{Err: ErrFixTimeout})
			timer.Reset(timeout)
		}
	}
}

func deviceFault(message string) error {
	return fmt.Errorf("device reported: %w", errors.New(message))
}

func relayChannel(userID string) string {
	return "location:" + userID + ":fixes"
}

func userIDFromChannel(ch string) string {
	// location:{user}:fixes
	const prefix = "location:"
	const suffix = ":fixes"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
