package config

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// AccessTTL in seconds.
	AccessTTL int64 `json:"access_ttl" yaml:"access_ttl"`
}
