package config

type WorkerConfig struct {
	ReminderSpec   string `yaml:"reminder_spec"`
	ExpirySpec     string `yaml:"expiry_spec"`
	Concurrency    int    `yaml:"concurrency"`
	MaxAttempts    int    `yaml:"max_attempts"`
	BaseDelayMs    int    `yaml:"base_delay_ms"`
	MaxDelayMs     int    `yaml:"max_delay_ms"`
	DedupeTTLHours int    `yaml:"dedupe_ttl_hours"`
}

func (w *WorkerConfig) defaults() {
	if w.ReminderSpec == "" {
		w.ReminderSpec = "@every 10m"
	}
	if w.ExpirySpec == "" {
		w.ExpirySpec = "@hourly"
	}
	if w.Concurrency <= 0 {
		w.Concurrency = 8
	}
	if w.MaxAttempts <= 0 {
		w.MaxAttempts = 3
	}
	if w.BaseDelayMs <= 0 {
		w.BaseDelayMs = 200
	}
	if w.MaxDelayMs <= 0 {
		w.MaxDelayMs = 5000
	}
	if w.DedupeTTLHours <= 0 {
		w.DedupeTTLHours = 72
	}
}

func ProvideWorkerConfig(cfg *Config) *WorkerConfig {
	return cfg.Worker
}
