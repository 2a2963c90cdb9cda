// Package config defines the application's configuration structures and
// loads them from environment variables and optional config files using
// viper, validating the result with go-playground/validator struct tags.
package config
