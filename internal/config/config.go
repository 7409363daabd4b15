package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Admin   AdminConfig   `yaml:"admin"`
	Redis   RedisConf     `yaml:"redis"`
	Cache   CacheConfig   `yaml:"cache"`
}

type HTTPConfig struct {
	Host         string   `yaml:"host" env:"HTTP_HOST" env-default:"127.0.0.1"`
	Port         string   `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
	BodyLimit    string   `yaml:"body_limit" env-default:"25M"`
	AllowOrigins []string `yaml:"allow_origins" env-separator:","`
}

// StorageConfig описывает все пути на диске, которыми владеет сервис
type StorageConfig struct {
	DataFile          string   `yaml:"data_file" env-required:"true"`
	PublicFile        string   `yaml:"public_file"`
	UploadDir         string   `yaml:"upload_dir" env-required:"true"`
	BaseURL           string   `yaml:"base_url" env-default:"/uploads"`
	AllowedExtensions []string `yaml:"allowed_extensions" env-separator:"," env-default:"png,jpg,jpeg,gif,webp"`
	GalleryLimit      int      `yaml:"gallery_limit" env-default:"15"`
}

// AdminConfig: basic auth is disabled while PasswordHash is empty.
type AdminConfig struct {
	Username      string `yaml:"username" env-default:"admin"`
	PasswordHash  string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET" env-default:"change-me"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
	Channel       string `yaml:"channel" env-default:"projects:mirror"`
}

type CacheConfig struct {
	GalleryTTL time.Duration `yaml:"gallery_ttl" env-default:"5m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
