package redis

import (
	"strings"
)

type CfgRedis struct {
	UseCluster           bool
	EnableTLS            bool
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	RedisClusterNode     string
	RedisClusterPassword string
}

type AppConfig struct {
	UseCluster bool
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	EnableTLS bool
}

type RedisClusterConfig struct {
	Hosts     []string
	Username  string
	Password  string
	EnableTLS bool
}

var (
	AppConfigData          AppConfig
	RedisConfigData        RedisConfig
	RedisClusterConfigData RedisClusterConfig
)

func LoadConfig(config *CfgRedis) {
	AppConfigData = AppConfig{
		UseCluster: config.UseCluster,
	}

	RedisConfigData = RedisConfig{
		Host:      config.RedisHost,
		Port:      config.RedisPort,
		Password:  config.RedisPassword,
		DB:        config.RedisDB,
		EnableTLS: config.EnableTLS,
	}

	clusterHost := strings.Split(config.RedisClusterNode, ";")
	RedisClusterConfigData = RedisClusterConfig{
		Hosts:     clusterHost,
		Password:  config.RedisClusterPassword,
		EnableTLS: config.EnableTLS,
	}
}
