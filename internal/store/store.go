// Package store provides the key/value storage port shared by the settings
// and cache layers. Individual Get/Set calls are the only mutation points;
// they are never composed into transactions, so concurrent writers follow
// last-writer-wins.
package store

// KV is the storage port. Implementations must treat a missing key as
// (_, false, nil), not as an error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
