package api

import (
	"sync"
	"time"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	CacheConfig
	SetupConfig
}

type StorageConfig struct {
	Driver               string
	DSN                  string
	TableNameTeams       string
	TableNameJudges      string
	TableNameAdmins      string
	TableNameEvaluations string
}

type ServerConfig struct {
	Port     int
	LogLevel string
}

type AuthConfig struct {
	JWTSecret           string
	TokenTTL            time.Duration
	BcryptCost          int
	EnforceActiveJudges bool
}

// CacheConfig configures the leaderboard cache. An empty RedisAddr disables it.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// SetupConfig holds the credentials used by the one-off initial admin endpoint.
type SetupConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:               getStringOrDefault("storage.driver", storage.DriverDynamo),
			DSN:                  getStringOrDefault("storage.dsn", ""),
			TableNameTeams:       getStringOrDefault("storage.TableNameTeams", "Teams"),
			TableNameJudges:      getStringOrDefault("storage.TableNameJudges", "Judges"),
			TableNameAdmins:      getStringOrDefault("storage.TableNameAdmins", "Admins"),
			TableNameEvaluations: getStringOrDefault("storage.TableNameEvaluations", "Evaluations"),
		},
		ServerConfig: ServerConfig{
			Port:     getIntOrDefault("server.port", 8080),
			LogLevel: getStringOrDefault("server.logLevel", "debug"),
		},
		AuthConfig: AuthConfig{
			JWTSecret:           getString("auth.jwtSecret"),
			TokenTTL:            getDurationOrDefault("auth.tokenTTL", 30*24*time.Hour),
			BcryptCost:          getIntOrDefault("auth.bcryptCost", 10),
			EnforceActiveJudges: getBoolOrDefault("auth.enforceActiveJudges", true),
		},
		CacheConfig: CacheConfig{
			RedisAddr:     getStringOrDefault("cache.redisAddr", ""),
			RedisPassword: getStringOrDefault("cache.redisPassword", ""),
			RedisDB:       getIntOrDefault("cache.redisDB", 0),
			TTL:           getDurationOrDefault("cache.ttl", 5*time.Minute),
		},
		SetupConfig: SetupConfig{
			AdminName:     getStringOrDefault("setup.adminName", "Administrator"),
			AdminEmail:    getStringOrDefault("setup.adminEmail", ""),
			AdminPassword: getStringOrDefault("setup.adminPassword", ""),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getString(name string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return ""
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
