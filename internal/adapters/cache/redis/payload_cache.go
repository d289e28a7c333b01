package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "dashboard:"

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// PayloadCache guarda las respuestas JSON de las métricas con un TTL corto.
// No reemplaza la lectura consistente: dos claves pueden venir de snapshots distintos.
type PayloadCache struct {
	client     *goredis.Client
	ownsClient bool
	prefix     string
	ttl        time.Duration
}

// New conecta y verifica con PING.
func New(cfg Config) (*PayloadCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	c := NewWithClient(client, cfg.TTL)
	c.ownsClient = true
	return c, nil
}

// NewWithClient usa un cliente existente; quien lo creó lo cierra.
func NewWithClient(client *goredis.Client, ttl time.Duration) *PayloadCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PayloadCache{
		client: client,
		prefix: defaultPrefix,
		ttl:    ttl,
	}
}

func (c *PayloadCache) key(k string) string {
	return c.prefix + k
}

// Get devuelve (nil, false, nil) en un miss.
func (c *PayloadCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

func (c *PayloadCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *PayloadCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}
