package config

type SmtpConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	// ImplicitTLS dials TLS directly (port 465); otherwise STARTTLS is used when offered.
	ImplicitTLS bool `yaml:"implicit_tls"`
}

func ProvideSmtpConfig(cfg *Config) *SmtpConfig {
	return cfg.Smtp
}
