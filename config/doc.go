// Package config loads YAML configuration and .env files with Viper.
//
// Environment variables override file values. Variables must carry the
// service prefix; the rest of the name is matched against nested keys, so
// DBFIXTURES_REDIS_ADDR sets redis.addr:
//
//	var cfg MyConfig
//	err := config.LoadConfig("dbfixtures", &cfg, config.WithConfigFile("config.yml"))
package config
