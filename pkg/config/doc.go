// Package config loads typed configuration structs from environment
// variables using `env` struct tags, with optional .env file support.
//
// Each config type is parsed once per process and cached, so components can
// declare and load their own Config struct independently without re-reading
// the environment.
package config
