package config

type Config interface {
	EnvConfig
	CorsConfig
	SessionConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type SessionConfig interface {
	GetSessionTTLHours() int
	GetAnonymousUserID() string
}

type StorageConfig interface {
	GetStorageBackend() string
	GetDatabaseURL() string
	GetRedisAddr() string
}

type mainConfig struct {
	EnvVars
	Cors
	Sessions
	Storage
}

func New() Config {
	return mainConfig{}
}
