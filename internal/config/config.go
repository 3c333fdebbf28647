package config

type Config interface {
	EnvConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleIssuer() string
}

type mainConfig struct {
	EnvVars
	Security
}

func New() Config {
	return mainConfig{}
}
