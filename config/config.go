package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the process-wide configuration.
type Config struct {
	App      *App            `json:"app" yaml:"app"`
	Server   *Server         `json:"server" yaml:"server"`
	MySQL    *MySQL          `json:"mysql" yaml:"mysql"`
	Redis    *Redis          `json:"redis" yaml:"redis"`
	Jwt      *Jwt            `json:"jwt" yaml:"jwt"`
	Oss      *OssConfig      `json:"oss" yaml:"oss"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Smtp     *SmtpConfig     `json:"smtp" yaml:"smtp"`
	Worker   *WorkerConfig   `json:"worker" yaml:"worker"`
}

type Server struct {
	Http   int `json:"http" yaml:"http"`
	Worker int `json:"worker" yaml:"worker"`
}

// New reads the yaml file, expanding ${VAR} references from the environment.
// A .env file next to the binary is loaded first when present.
func New(filename string) *Config {
	_ = godotenv.Load()

	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", filename, err))
	}
	return conf
}

// Parse decodes a yaml document and fills defaults for missing sections.
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(content))), &conf); err != nil {
		return nil, err
	}
	conf.defaults()
	return &conf, nil
}

func (c *Config) defaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.App.Name == "" {
		c.App.Name = "petly"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Server.Worker == 0 {
		c.Server.Worker = 8081
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.AccessTTL == 0 {
		c.Jwt.AccessTTL = 7200
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	if c.RocketMQ.Topic == "" {
		c.RocketMQ.Topic = DefaultEffectTopic
	}
	if c.Worker == nil {
		c.Worker = &WorkerConfig{}
	}
	c.Worker.defaults()
}

// Debug reports whether debug mode is on.
func (c *Config) Debug() bool {
	return c.App.Debug
}
