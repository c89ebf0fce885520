package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"ru", "en", "fr"}, cfg.Language.Supported)
	assert.Equal(t, "en", cfg.Language.Default)
	assert.Equal(t, "redis", cfg.Queue.Driver)
	assert.Equal(t, 3, cfg.Queue.MaxRetries)
	assert.Equal(t, 60*time.Second, cfg.Queue.RetryDelay)
	assert.Equal(t, 60*time.Second, cfg.Queue.SoftTimeLimit)
	assert.Equal(t, 120*time.Second, cfg.Queue.HardTimeLimit)
	assert.Equal(t, 4, cfg.Queue.Concurrency)
	assert.True(t, cfg.Queue.RecoverOnStart)
	assert.Equal(t, 480*time.Minute, cfg.Auth.JWTExpire)
	assert.Equal(t, "director@travelagency.com", cfg.Mail.DirectorEmail)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "host=localhost port=5432 user=travel_user password= dbname=travel_db sslmode=disable", cfg.Database.DSN())
}

func TestLanguagesAreNormalized(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]interface{}{
		"SUPPORTED_LANGUAGES": " RU, en ,,Fr ",
		"DEFAULT_LANGUAGE":    "FR",
		"SITE_URL":            "https://travel.example.com/",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"ru", "en", "fr"}, cfg.Language.Supported)
	assert.Equal(t, "fr", cfg.Language.Default)
	assert.True(t, cfg.Language.IsSupported("ru"))
	assert.False(t, cfg.Language.IsSupported("de"))
	assert.Equal(t, "https://travel.example.com", cfg.Mail.SiteURL)
}

func TestDatabaseURLWins(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]interface{}{"DATABASE_URL": "postgres://u:p@db:5432/travel"}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/travel", cfg.Database.DSN())
}

func TestValidationFailures(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"default not supported":    {"DEFAULT_LANGUAGE": "de"},
		"no languages":             {"SUPPORTED_LANGUAGES": " , "},
		"asymmetric jwt algorithm": {"JWT_ALGORITHM": "RS256"},
		"missing prod secret":      {"APP_ENV": "production"},
		"unknown queue driver":     {"QUEUE_DRIVER": "kafka"},
		"negative retries":         {"JOB_MAX_RETRIES": -1},
		"no concurrency":           {"JOB_CONCURRENCY": 0},
		"hard below soft":          {"JOB_SOFT_TIME_LIMIT": "60s", "JOB_HARD_TIME_LIMIT": "30s"},
		"no director":              {"DIRECTOR_EMAIL": ""},
		"zero token lifetime":      {"JWT_EXPIRE_MINUTES": 0},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromViper(newViper(overrides))
			assert.Error(t, err)
		})
	}
}

func TestProductionWithSecret(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]interface{}{"APP_ENV": "production", "JWT_SECRET_KEY": "s3cret"}))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}
