package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client is the go-redis surface the player snapshot store runs against.
// Tests back it with miniredis.
type Client interface {
	redis.UniversalClient
}
