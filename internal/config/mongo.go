package config

import (
	"os"
	"sync"
)

type MongoConfig struct {
	URI      string
	Database string
}

var (
	mongoConfig *MongoConfig
	mongoOnce   sync.Once
)

func LoadMongoConfig() *MongoConfig {
	mongoOnce.Do(func() {
		database := os.Getenv("MONGODB_DATABASE")
		if database == "" {
			database = "resume-ready"
		}
		mongoConfig = &MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: database,
		}
	})
	return mongoConfig
}
