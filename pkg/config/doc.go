// Package config loads environment-based configuration structs.
//
// Configuration is declared as structs with `env` tags and parsed with
// caarlos0/env. A local .env file, when present, is loaded once per process
// via godotenv before the first parse. Parsed configurations are cached per
// type so independently initialized packages agree on the values they see.
package config
