package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/survey-flow/survey-backend/pkg/surveyflow"
)

var ErrSessionNotFound = errors.New("survey session not found")

type RedisConfigYaml struct {
	Address    string `yaml:"address"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	SessionTTL string `yaml:"session_ttl"`
}

// SessionStore keeps active survey sessions between stateless HTTP calls.
type SessionStore interface {
	Save(ctx context.Context, session *surveyflow.Session) error
	Get(ctx context.Context, sessionID string) (*surveyflow.Session, error)
	Delete(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

func NewRedisClient(config RedisConfigYaml) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})
}

func (s *redisSessionStore) key(sessionID string) string {
	return fmt.Sprintf("survey-session:%s", sessionID)
}

func (s *redisSessionStore) Save(ctx context.Context, session *surveyflow.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.ID), data, s.ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*surveyflow.Session, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session surveyflow.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	return n > 0, err
}
