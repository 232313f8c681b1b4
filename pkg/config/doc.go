// Package config loads configuration from the environment.
//
// Every package that needs settings declares a Config struct with `env`
// tags (cache.Config, smtp.Config, logger.Config and so on). The command
// composes them into one struct and loads it once at startup, after
// reading an optional .env file:
//
//	if err := config.LoadEnv(); err != nil {
//	    return err
//	}
//	var cfg appConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Parsing uses github.com/caarlos0/env and dotenv files are read with
// github.com/joho/godotenv. Variables already present in the environment
// win over values from dotenv files.
package config
