package config

type App struct {
	Env     string `json:"env" yaml:"env"`
	Debug   bool   `json:"debug" yaml:"debug"`
	Name    string `json:"name" yaml:"name"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	// Timezone renders dates in e-mails and notifications, e.g. Europe/Madrid.
	Timezone string `json:"timezone" yaml:"timezone"`
	// HashSalt seeds review-link tokens and referral codes.
	HashSalt string `json:"hash_salt" yaml:"hash_salt"`
}
