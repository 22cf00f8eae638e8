package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetInt returns integer stored under the key or 0 if there is no such key.
func GetInt(ctx storage.Context, key any) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

// PutInt puts integer into contract storage. Zero value deletes the key, so
// storage iterators never return empty entries.
func PutInt(ctx storage.Context, key any, value int) {
	if value == 0 {
		storage.Delete(ctx, key)
		return
	}

	storage.Put(ctx, key, value)
}
