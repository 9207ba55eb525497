package server

import (
	"github.com/dustin/go-humanize"
)

// StorageServerConfig holds quota settings for new accounts.
type StorageServerConfig struct {
	// DefaultQuota is a human-readable size ("15GiB", "500MB").
	DefaultQuota string `mapstructure:"default_quota" yaml:"default_quota"`
}

// QuotaBytes parses DefaultQuota into bytes.
func (c StorageServerConfig) QuotaBytes() (int64, error) {
	n, err := humanize.ParseBytes(c.DefaultQuota)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}
