// Package pg wires pgx connection pools from environment configuration:
// retrying connect, pool tuning, a health probe, and helpers for classifying
// common PostgreSQL errors.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
package pg
