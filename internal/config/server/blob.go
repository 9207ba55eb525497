package server

// BlobServerConfig selects and configures the content store backend. Only
// the section matching Type is used.
type BlobServerConfig struct {
	Type       string               `mapstructure:"type"       yaml:"type"       validate:"oneof=filesystem memory s3 badger"`
	Filesystem BlobFilesystemConfig `mapstructure:"filesystem" yaml:"filesystem"`
	S3         BlobS3Config         `mapstructure:"s3"         yaml:"s3"`
	Badger     BlobBadgerConfig     `mapstructure:"badger"     yaml:"badger"`
}

type BlobFilesystemConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type BlobS3Config struct {
	Region    string `mapstructure:"region"     yaml:"region"`
	Bucket    string `mapstructure:"bucket"     yaml:"bucket"`
	Endpoint  string `mapstructure:"endpoint"   yaml:"endpoint"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix"`
}

type BlobBadgerConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}
