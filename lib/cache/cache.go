package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var Client *redis.Client

// Init conecta a redis; si no hay servidor disponible el caché queda
// deshabilitado y los catálogos se sirven siempre desde la base.
func Init(addr string) {
	if addr == "" {
		return
	}
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis no disponible, continuando sin caché")
		Client = nil
		return
	}
	log.Info("conexión redis establecida")
}

func GetJSON(ctx context.Context, key string, dest any) (found bool, err error) {
	if Client == nil {
		return false, nil
	}
	s, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, b, ttl).Err()
}

// CacheAside intenta redis primero; en un miss ejecuta fetch (que debe
// escribir en dest) y guarda el resultado con ttl. Un fallo de redis nunca
// rompe la lectura: se degrada a fetch directo.
func CacheAside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("error leyendo caché")
	}
	if found {
		return nil
	}
	if err := fetch(); err != nil {
		return err
	}
	if err := SetJSON(ctx, key, dest, ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("error guardando en caché")
	}
	return nil
}
