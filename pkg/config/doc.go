// Package config loads application configuration from environment variables
// into tagged Go structs, with optional .env file support.
//
// Each struct type is parsed once per process and cached, so components can
// call Load for their own config without coordinating:
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg RedisConfig
//	config.MustLoad(&cfg)
//
// ResetCache exists for tests that change the environment between loads.
package config
