package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/configuration"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/httpapi"
)

type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
	KeyFunc           func(r *http.Request) string
}

// NewMemoryStore keeps counters in-process. Fine for a single gateway
// instance, use redis when running more than one replica.
func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "sigeled:ratelimit",
	})
}

// RateLimit caps requests per client IP over the configured period.
// Period defaults to one second.
func RateLimit(config RateLimitConfig) mux.MiddlewareFunc {
	store := config.Store
	if store == nil {
		store = NewMemoryStore()
	}
	period := config.Period
	if period <= 0 {
		period = time.Second
	}
	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  int64(config.RequestsPerPeriod),
	})
	mw := mhttp.NewMiddleware(instance,
		mhttp.WithKeyGetter(func(r *http.Request) string {
			if config.KeyFunc != nil {
				return config.KeyFunc(r)
			}
			return getRealIP(r, configuration.Use())
		}),
		mhttp.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusTooManyRequests, "LIMITE_EXCEDIDO", "demasiadas solicitudes, intente nuevamente más tarde", nil)
		}),
	)
	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}
}
