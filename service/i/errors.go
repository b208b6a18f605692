package i

import "errors"

var (
	// ErrRunNotFound is returned by RunRepo.ByID for unknown IDs.
	ErrRunNotFound = errors.New("run not found")

	// ErrCacheMiss is returned by RunCache.Fetch when nothing is cached under the key.
	ErrCacheMiss = errors.New("cache miss")
)
