package config

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// Environment variable names. The token variables keep the names the
// deployment already uses.
const (
	EnvAddress            = "ADDRESS"
	EnvDatabaseDSN        = "DATABASE_DSN"
	EnvAccessTokenSecret  = "ACCESS_TOKEN_SECRET"
	EnvRefreshTokenSecret = "REFRESH_TOKEN_SECRET"
	// EnvAccessTokenTTL and EnvRefreshTokenTTL take timex.ParseDuration
	// values ("15m", "7d", "1d12h"). A unitless number means seconds, not
	// the milliseconds older deployments of this variable assumed, and
	// "1.5d" or "2 days" fail to load.
	EnvAccessTokenTTL     = "ACCESS_TOKEN_EXPIRATION_TIME"
	EnvRefreshTokenTTL    = "REFRESH_TOKEN_EXPIRATION_TIME"
	EnvS3RootUser         = "S3_ROOT_USER"
	EnvS3RootPassword     = "S3_ROOT_PASSWORD"
	EnvS3Bucket           = "S3_BUCKET"
	EnvS3Region           = "S3_REGION"
	EnvS3BaseEndpoint     = "S3_BASE_ENDPOINT"
	EnvMaxUploadBytes     = "MAX_UPLOAD_BYTES"
	EnvLogLevel           = "LOG_LEVEL"
)

// parseEnv overlays non-empty environment variables onto config.
// Expiration times accept Go durations plus a day suffix ("7d").
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return v
	}

	setString(&config.EndpointAddrHTTP, get(EnvAddress))
	setString(&config.DatabaseDSN, get(EnvDatabaseDSN))
	setString(&config.AccessTokenSecret, get(EnvAccessTokenSecret))
	setString(&config.RefreshTokenSecret, get(EnvRefreshTokenSecret))
	setString(&config.S3RootUser, get(EnvS3RootUser))
	setString(&config.S3RootPassword, get(EnvS3RootPassword))
	setString(&config.S3Bucket, get(EnvS3Bucket))
	setString(&config.S3Region, get(EnvS3Region))
	setString(&config.S3BaseEndpoint, get(EnvS3BaseEndpoint))
	setString(&config.LogLevel, get(EnvLogLevel))

	if v := get(EnvAccessTokenTTL); v != "" {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAccessTokenTTL, err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v := get(EnvRefreshTokenTTL); v != "" {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRefreshTokenTTL, err)
		}
		config.RefreshTokenValidityDuration = d
	}
	if v := get(EnvMaxUploadBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxUploadBytes, err)
		}
		config.MaxUploadBytes = n
	}
	return nil
}
