package config

import (
	"os"
	"sync"
)

type StorageConfig struct {
	UploadDir string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		dir := os.Getenv("UPLOAD_DIR")
		if dir == "" {
			dir = "./uploads"
		}
		storageConfig = &StorageConfig{UploadDir: dir}
	})
	return storageConfig
}
