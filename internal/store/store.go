// Package store provides a small durable key-value store in the spirit of
// browser localStorage: string keys, synchronous reads at startup.
package store

// Local stores string values under fixed keys. Implementations must be safe
// for concurrent use.
type Local interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
