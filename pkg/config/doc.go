// Package config loads typed configuration structs from environment
// variables, optionally seeded from dotenv files.
//
// Each package that needs configuration declares its own struct with `env`
// tags and loads it at startup:
//
//	var redisCfg redis.Config
//	config.MustLoad(&redisCfg)
//
// Parsing is delegated to github.com/caarlos0/env; dotenv loading to
// github.com/joho/godotenv.
package config
