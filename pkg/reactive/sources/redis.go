package sources

import (
	"context"

	"github.com/redis/go-redis/v9"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// RedisChannel emits every message published on channels. Each subscription
// opens its own Pub/Sub connection and closes it on release. A receive
// failure ends the stream with an *errors.OperationError.
func RedisChannel(client redis.UniversalClient, channels ...string) (*observable.Observable[*redis.Message], error) {
	if err := validateRedis(client, "channels", channels); err != nil {
		return nil, err
	}
	return redisSource(func(ctx context.Context) *redis.PubSub {
		return client.Subscribe(ctx, channels...)
	}), nil
}

// RedisPattern is like RedisChannel but subscribes to glob-style patterns,
// for example "events.*".
func RedisPattern(client redis.UniversalClient, patterns ...string) (*observable.Observable[*redis.Message], error) {
	if err := validateRedis(client, "patterns", patterns); err != nil {
		return nil, err
	}
	return redisSource(func(ctx context.Context) *redis.PubSub {
		return client.PSubscribe(ctx, patterns...)
	}), nil
}

func validateRedis(client redis.UniversalClient, field string, names []string) error {
	if err := validation.ValidateNotNil(module, "client", client); err != nil {
		return err
	}
	if len(names) == 0 {
		return rferrors.NewValidationError(module, field, names, "cannot be empty").
			WithHint("provide at least one name")
	}
	for _, name := range names {
		if err := validation.ValidateNotEmpty(module, field, name); err != nil {
			return err
		}
	}
	return nil
}

func redisSource(open func(ctx context.Context) *redis.PubSub) *observable.Observable[*redis.Message] {
	return observable.New(func(observer observable.Observer[*redis.Message]) observable.Teardown {
		pubsub := open(context.Background())

		return spawn(context.Background(), observer, pubsub.Close, func(ctx context.Context, emit func(*redis.Message)) error {
			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					return rferrors.NewOperationError(module, "redis.receive", err)
				}
				emit(msg)
			}
		})
	})
}
