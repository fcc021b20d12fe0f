package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN            string `mapstructure:"dsn"`
		MigrationsPath string `mapstructure:"migrations_path"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	Client ClientConfig `mapstructure:"client"`
}

// ClientConfig drives growthctl and anything else embedding the tracker.
type ClientConfig struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	LocalBackend   string        `mapstructure:"local_backend"`
	LocalPath      string        `mapstructure:"local_path"`
	SessionTimeout time.Duration `mapstructure:"session_timeout"`
	SyncWait       time.Duration `mapstructure:"sync_wait"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("db.migrations_path", "file://migrations")
	v.SetDefault("kafka.group_id", "growth-stats-projector")
	v.SetDefault("auth.token_lifespan", 72*time.Hour)
	v.SetDefault("client.api_base_url", "http://localhost:8080/api")
	v.SetDefault("client.local_backend", "sqlite")
	v.SetDefault("client.local_path", "growth-tracker.db")
	v.SetDefault("client.session_timeout", 5*time.Second)
	v.SetDefault("client.sync_wait", 10*time.Second)
	v.SetDefault("client.request_timeout", 15*time.Second)
}

// LoadConfig reads .env, then config.yaml from the given paths (the working
// directory when none), then the environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.migrations_path", "DB_MIGRATIONS_PATH")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	v.BindEnv("client.api_base_url", "GROWTH_API_URL")
	v.BindEnv("client.local_backend", "GROWTH_LOCAL_BACKEND")
	v.BindEnv("client.local_path", "GROWTH_LOCAL_PATH")
	v.BindEnv("client.session_timeout", "GROWTH_SESSION_TIMEOUT")

	err = v.Unmarshal(&cfg)
	return
}
