package config

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetStorageBackend() string {
	return GetEnv(storageEnvVar, StorageMemory)
}

func (Storage) GetDatabaseURL() string {
	return GetEnv("DATABASE_URL", "")
}

// GetRedisAddr returns the Redis address for session storage, or empty to
// keep sessions in the primary store.
func (Storage) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}
