package server

import "github.com/spf13/viper"

func GetServerDefault() BaseServerConfig {
	return BaseServerConfig{
		ShutdownTimeout: "10s",

		Log: LogServerConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogServerRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},

		Metadata: MetadataServerConfig{
			Type: "sqlite",
			SQLite: MetadataSQLiteConfig{
				Path: "firecloud.db",
			},
		},

		Blob: BlobServerConfig{
			Type: "filesystem",
			Filesystem: BlobFilesystemConfig{
				Path: "blobs",
			},
			S3: BlobS3Config{
				Region: "us-east-1",
			},
			Badger: BlobBadgerConfig{
				Path: "blobs.badger",
			},
		},

		Storage: StorageServerConfig{
			DefaultQuota: "15GiB",
		},
	}
}

func setDefaults() {
	defaults := GetServerDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	viper.SetDefault("metadata.type", defaults.Metadata.Type)
	viper.SetDefault("metadata.sqlite.path", defaults.Metadata.SQLite.Path)

	viper.SetDefault("blob.type", defaults.Blob.Type)
	viper.SetDefault("blob.filesystem.path", defaults.Blob.Filesystem.Path)
	viper.SetDefault("blob.s3.region", defaults.Blob.S3.Region)
	viper.SetDefault("blob.badger.path", defaults.Blob.Badger.Path)

	viper.SetDefault("storage.default_quota", defaults.Storage.DefaultQuota)
}
