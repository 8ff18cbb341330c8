package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client is the go-redis universal client behind an interface the snapshot
// repository and tests can substitute
type Client interface {
	redis.UniversalClient
}
