package kv

import "context"

// Store is the flat string key-value mirror of the application state.
// Get reports found=false for absent keys; only backend failures return an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
