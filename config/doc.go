// Package config provides configuration loading for the aurascribe service.
//
// Configuration is layered: a YAML file provides the base, a .env file is
// loaded into the process environment, and environment variables override
// both. Loading uses Viper with godotenv for .env support.
//
// # Usage
//
//	var cfg appConfig
//	err := config.Load("aurascribe", &cfg)
//
// Environment variables map onto nested keys by underscore, so
// DEEPGRAM_API_KEY overrides the deepgram.api_key setting.
package config
