package config

import (
	"github.com/Artexxx/HR-Registry/library/pg"
	"github.com/Artexxx/HR-Registry/library/yamlenv"
)

type Config struct {
	Postgres pg.PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig       `yaml:"kafka"`
	UserAPI  ApiConfig         `yaml:"userAPI"`
}

type KafkaConfig struct {
	Bootstrap        *yamlenv.Env[string] `yaml:"bootstrap"`
	ProducerClientID *yamlenv.Env[string] `yaml:"producer_client_id"`
	Topics           struct {
		Assignments *yamlenv.Env[string] `yaml:"assignments"`
		Commands    *yamlenv.Env[string] `yaml:"commands"`
	} `yaml:"topics"`
}

type ApiConfig struct {
	Port *yamlenv.Env[int] `yaml:"port"`
}
