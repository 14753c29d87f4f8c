package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const DefaultApiURL = "https://api.groq.com/openai/v1/chat/completions"

type Config struct {
	Env        string        `yaml:"env" env:"ENV" env-default:"prod"`
	GroqApiKey string        `yaml:"groq_api_key" env:"GROQ_API_KEY" env-default:""`
	ApiURL     string        `yaml:"api_url" env:"API_URL" env-default:"https://api.groq.com/openai/v1/chat/completions"`
	Timeout    time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"20s"`
	Listen     string        `yaml:"listen" env:"LISTEN" env-default:":7860"`
	Telegram   struct {
		Enabled  bool   `yaml:"enabled" env:"TELEGRAM_ENABLED" env-default:"false"`
		ApiKey   string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		Username string `yaml:"username" env:"TELEGRAM_USERNAME" env-default:""`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"explainer"`
	} `yaml:"mongo"`
}

var instance *Config
var once sync.Once

// GetConfig reads the yaml file at path, values from the environment take
// precedence; without the file only the environment is used
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = load(path)
	})
	return instance, err
}

// MustLoad exits the process if configuration cannot be read
func MustLoad(path string) *Config {
	conf, err := GetConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return conf
}

func load(path string) (*Config, error) {
	// .env is optional, same as for the yaml file
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	conf := &Config{}
	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, conf)
	} else {
		err = cleanenv.ReadEnv(conf)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("config: %s; %s", err, desc)
	}
	if conf.Timeout <= 0 {
		return nil, fmt.Errorf("config: timeout must be positive, got %s", conf.Timeout)
	}
	return conf, nil
}

// MongoURI builds the connection string from the mongo section
func (c *Config) MongoURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s",
		c.Mongo.User, c.Mongo.Password,
		c.Mongo.Host, c.Mongo.Port)
}
