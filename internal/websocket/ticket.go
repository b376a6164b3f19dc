package websocket

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/brandsite-backend/pkg/redis"
)

// TicketTTL bounds how long a ticket can wait before the socket connects.
const TicketTTL = 30 * time.Second

var ErrInvalidTicket = errors.New("invalid or expired ticket")

// TicketStore issues single-use tickets that stand in for the bearer token on
// the socket handshake, where browsers cannot set headers.
type TicketStore interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Redeem(ctx context.Context, ticket string) (uint, error)
}

type memoryTicket struct {
	userID  uint
	expires time.Time
}

// MemoryTicketStore keeps tickets in process. Used when Redis is disabled.
type MemoryTicketStore struct {
	mu      sync.Mutex
	tickets map[string]memoryTicket
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryTicketStore(ttl time.Duration) *MemoryTicketStore {
	return &MemoryTicketStore{
		tickets: make(map[string]memoryTicket),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryTicketStore) Issue(_ context.Context, userID uint) (string, error) {
	ticket := uuid.New().String()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.tickets {
		if now.After(t.expires) {
			delete(s.tickets, k)
		}
	}
	s.tickets[ticket] = memoryTicket{userID: userID, expires: now.Add(s.ttl)}
	return ticket, nil
}

func (s *MemoryTicketStore) Redeem(_ context.Context, ticket string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[ticket]
	if !ok {
		return 0, ErrInvalidTicket
	}
	delete(s.tickets, ticket)
	if s.now().After(t.expires) {
		return 0, ErrInvalidTicket
	}
	return t.userID, nil
}

// RedisTicketStore shares tickets across instances.
type RedisTicketStore struct {
	ttl time.Duration
}

func NewRedisTicketStore(ttl time.Duration) *RedisTicketStore {
	return &RedisTicketStore{ttl: ttl}
}

func (s *RedisTicketStore) Issue(ctx context.Context, userID uint) (string, error) {
	ticket := uuid.New().String()
	if err := redis.StoreTicket(ctx, ticket, strconv.FormatUint(uint64(userID), 10), s.ttl); err != nil {
		return "", err
	}
	return ticket, nil
}

func (s *RedisTicketStore) Redeem(ctx context.Context, ticket string) (uint, error) {
	val, ok, err := redis.ConsumeTicket(ctx, ticket)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrInvalidTicket
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrInvalidTicket
	}
	return uint(id), nil
}
