package config

type OssConfig struct {
	Endpoint         string `json:"endpoint" yaml:"endpoint"`
	InternalEndpoint string `json:"internal_endpoint" yaml:"internal_endpoint"`
	Region           string `json:"region" yaml:"region"`
	Bucket           string `json:"bucket" yaml:"bucket"`
	AccessKeyID      string `json:"ak" yaml:"ak"`
	AccessKeySecret  string `json:"sk" yaml:"sk"`
	// PublicDomain is the CDN host used to build file_url values.
	PublicDomain string `json:"public_domain" yaml:"public_domain"`
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}
