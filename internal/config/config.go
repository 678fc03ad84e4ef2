/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"gridhawk/common/db"
)

type ServiceConfig struct {
	Host         string `toml:"Host"`
	Port         int    `toml:"Port"`
	LogLevel     string `toml:"LogLevel"`
	BatchWorkers int    `toml:"BatchWorkers"`
}

type RedisConfig struct {
	Host     string `toml:"Host"`
	Port     string `toml:"Port"`
	Password string `toml:"Password"`
	MaxIdle  int    `toml:"MaxIdle"`
}

type PostgresConfig struct {
	Host     string `toml:"Host"`
	Port     string `toml:"Port"`
	User     string `toml:"User"`
	Password string `toml:"Password"`
	DbName   string `toml:"DbName"`
	SslMode  string `toml:"SslMode"`
}

type MqttConfig struct {
	Enabled  bool   `toml:"Enabled"`
	Protocol string `toml:"Protocol"`
	Server   string `toml:"Server"`
	Port     int    `toml:"Port"`
	Username string `toml:"Username"`
	Password string `toml:"Password"`
	QoS      int    `toml:"QoS"`
	Topic    string `toml:"Topic"`
	ClientId string `toml:"ClientId"`
}

type ModelConfig struct {
	ArtifactPath string `toml:"ArtifactPath"`
}

type CacheConfig struct {
	PredictionTTLSeconds int `toml:"PredictionTTLSeconds"`
}

type AppConfig struct {
	Service  ServiceConfig  `toml:"Service"`
	Redis    RedisConfig    `toml:"Redis"`
	Postgres PostgresConfig `toml:"Postgres"`
	Mqtt     MqttConfig     `toml:"Mqtt"`
	Model    ModelConfig    `toml:"Model"`
	Cache    CacheConfig    `toml:"Cache"`
}

// Load reads the TOML configuration file and applies environment overrides.
// Missing file is not an error; defaults plus environment are enough to run
// in a container.
func Load(configFilePath string) (*AppConfig, error) {
	cfg := defaults()

	if _, err := os.Stat(configFilePath); err == nil {
		tree, err := toml.LoadFile(configFilePath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFilePath)
		}
		if err := tree.Unmarshal(cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", configFilePath)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaults() *AppConfig {
	return &AppConfig{
		Service: ServiceConfig{
			Host:         "0.0.0.0",
			Port:         48110,
			LogLevel:     "INFO",
			BatchWorkers: 8,
		},
		Redis: RedisConfig{
			Host:    "localhost",
			Port:    "6379",
			MaxIdle: 10,
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "gridhawk",
			DbName:  "gridhawk",
			SslMode: "disable",
		},
		Mqtt: MqttConfig{
			Protocol: "tcp",
			Server:   "localhost",
			Port:     1883,
			QoS:      1,
			Topic:    "gridhawk/alerts",
			ClientId: "gridhawk-scoring",
		},
		Model: ModelConfig{
			ArtifactPath: "res/model/artifact.json",
		},
		Cache: CacheConfig{
			PredictionTTLSeconds: 300,
		},
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("GRIDHAWK_SERVICE_PORT"); v != "" {
		if port, err := cast.ToIntE(v); err == nil {
			cfg.Service.Port = port
		}
	}
	if v := os.Getenv("GRIDHAWK_LOG_LEVEL"); v != "" {
		cfg.Service.LogLevel = v
	}
	if v := os.Getenv("GRIDHAWK_REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("GRIDHAWK_REDIS_PORT"); v != "" {
		cfg.Redis.Port = v
	}
	if v := os.Getenv("GRIDHAWK_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("GRIDHAWK_PG_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("GRIDHAWK_PG_PORT"); v != "" {
		cfg.Postgres.Port = v
	}
	if v := os.Getenv("GRIDHAWK_PG_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("GRIDHAWK_PG_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("GRIDHAWK_PG_DBNAME"); v != "" {
		cfg.Postgres.DbName = v
	}
	if v := os.Getenv("GRIDHAWK_MQTT_ENABLED"); v != "" {
		if enabled, err := cast.ToBoolE(v); err == nil {
			cfg.Mqtt.Enabled = enabled
		}
	}
	if v := os.Getenv("GRIDHAWK_MQTT_SERVER"); v != "" {
		cfg.Mqtt.Server = v
	}
	if v := os.Getenv("GRIDHAWK_MQTT_PORT"); v != "" {
		if port, err := cast.ToIntE(v); err == nil {
			cfg.Mqtt.Port = port
		}
	}
	if v := os.Getenv("GRIDHAWK_MODEL_ARTIFACT"); v != "" {
		cfg.Model.ArtifactPath = v
	}
	if v := os.Getenv("GRIDHAWK_CACHE_TTL_SECONDS"); v != "" {
		if ttl, err := cast.ToIntE(v); err == nil {
			cfg.Cache.PredictionTTLSeconds = ttl
		}
	}
}

func (cfg *AppConfig) DatabaseConfig() *db.DatabaseConfig {
	return &db.DatabaseConfig{
		RedisHost:     cfg.Redis.Host,
		RedisPort:     cfg.Redis.Port,
		RedisPassword: cfg.Redis.Password,
		MaxIdle:       cfg.Redis.MaxIdle,
	}
}

func (cfg *AppConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User,
		cfg.Postgres.Password, cfg.Postgres.DbName, cfg.Postgres.SslMode)
}
