package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig   `mapstructure:"server"`
	Optimus   DatabaseConfig `mapstructure:"optimus"`   // 生产排程库（只读，工单写入除外）
	Backstage DatabaseConfig `mapstructure:"backstage"` // 打样/稿件库
	AuthDB    DatabaseConfig `mapstructure:"authdb"`    // 认证库（本服务维护迁移）
	Redis     RedisConfig    `mapstructure:"redis"`
	Auth      AuthConfig     `mapstructure:"auth"`
	Media     MediaConfig    `mapstructure:"media"`
	Log       LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig 单个数据源配置
// Driver 支持 postgres（默认）与 sqlite；sqlite 时 Name 为文件路径
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
}

// DSN 生成连接字符串
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Name
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret               string        `mapstructure:"jwt_secret"`
	AccessTokenTTL          time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTLDefault  time.Duration `mapstructure:"refresh_token_ttl_default"`
	RefreshTokenTTLRemember time.Duration `mapstructure:"refresh_token_ttl_remember_me"`
	LoginRateLimit          int           `mapstructure:"login_rate_limit"`
	LoginRateWindow         time.Duration `mapstructure:"login_rate_window"`
}

// MediaConfig 稿件路径改写与缩略图配置
type MediaConfig struct {
	SharePrefix     string `mapstructure:"share_prefix"`     // 网络共享前缀，如 file://fertbs1/Scope_Laboratorios/
	MediaPrefix     string `mapstructure:"media_prefix"`     // 本地媒体服务前缀，如 /media/scope/
	ThumbnailPrefix string `mapstructure:"thumbnail_prefix"` // 缩略图由外部工具生成，这里只拼路径
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	setDatabaseDefaults(v, "optimus", "optimus")
	setDatabaseDefaults(v, "backstage", "backstage")
	setDatabaseDefaults(v, "authdb", "labportal_auth")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl_default", "24h")
	v.SetDefault("auth.refresh_token_ttl_remember_me", "168h")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_rate_window", "1m")

	v.SetDefault("media.share_prefix", "file://fertbs1/Scope_Laboratorios/")
	v.SetDefault("media.media_prefix", "/media/scope/")
	v.SetDefault("media.thumbnail_prefix", "/media/thumbs/")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("LAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper, key, name string) {
	v.SetDefault(key+".driver", "postgres")
	v.SetDefault(key+".host", "localhost")
	v.SetDefault(key+".port", 5432)
	v.SetDefault(key+".name", name)
	v.SetDefault(key+".user", "postgres")
	v.SetDefault(key+".password", "")
	v.SetDefault(key+".sslmode", "disable")
	v.SetDefault(key+".timezone", "Europe/Lisbon")
	v.SetDefault(key+".max_open_conns", 25)
	v.SetDefault(key+".max_idle_conns", 10)
	v.SetDefault(key+".conn_max_lifetime", 60)
	v.SetDefault(key+".conn_max_idle_time", 30)
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	for name, db := range map[string]DatabaseConfig{"optimus": c.Optimus, "backstage": c.Backstage, "authdb": c.AuthDB} {
		if db.Driver != "postgres" && db.Driver != "sqlite" {
			return fmt.Errorf("配置校验失败: %s.driver 仅支持 postgres 或 sqlite", name)
		}
	}
	return nil
}
