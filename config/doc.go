// Package config loads service configuration with viper.
//
// LoadConfig looks for cmd/<service>/config.yml (then config/config.yml and
// ./config.yml), loads a .env file into the process environment with
// godotenv, and overlays prefixed environment variables:
//
//	COUNCIL_RETRY_MAX_ATTEMPTS=5  ->  retry.max_attempts
//
// Provider credentials such as OPENAI_API_KEY are read from the
// environment directly by the components that need them; the .env file is
// only a convenient way to set them.
package config
