// Package redis wires go-redis clients from environment configuration with
// retrying connect and a health probe. The shared tenant cache
// (tenant.NewRedisCache) takes a client produced here.
package redis
