package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "1MB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey SecretKeyConfig `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Cookie *CookieConfig `json:"cookie" yaml:"cookie"`

	// Client is the browser application that OAuth redirects land on.
	Client *ClientConfig `json:"client" yaml:"client"`

	OAuth *OAuthConfig `json:"oauth" yaml:"oauth"`

	Mail *MailConfig `json:"mail" yaml:"mail"`

	Storage *StorageConfig `json:"storage" yaml:"storage"`

	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PostgresConfig describes the primary connection and optional read replicas.
type PostgresConfig struct {
	Master          ConnectionConfig   `json:"master" yaml:"master"`
	Replicas        []ConnectionConfig `json:"replicas" yaml:"replicas"`
	DBName          string             `json:"dbName" yaml:"dbName"`
	SSLMode         string             `json:"sslMode" yaml:"sslMode"`
	TimeZone        string             `json:"timeZone" yaml:"timeZone"`
	MaxIdleConns    int                `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxOpenConns    int                `json:"maxOpenConns" yaml:"maxOpenConns"`
	ConnMaxLifetime time.Duration      `json:"connMaxLifetime" yaml:"connMaxLifetime"`
	AutoMigrate     bool               `json:"autoMigrate" yaml:"autoMigrate"`
}

type ConnectionConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     string `json:"port" yaml:"port"`
	UserName string `json:"userName" yaml:"userName"`
	Password string `json:"password" yaml:"password"`
}

type SecretKeyConfig struct {
	Access  string `json:"access" yaml:"access"`
	Refresh string `json:"refresh" yaml:"refresh"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost           int           `json:"bcryptCost" yaml:"bcryptCost"`
	AccessTokenTTL       time.Duration `json:"accessTokenTTL" yaml:"accessTokenTTL"`
	RefreshTokenTTL      time.Duration `json:"refreshTokenTTL" yaml:"refreshTokenTTL"`
	VerificationCodeTTL  time.Duration `json:"verificationCodeTTL" yaml:"verificationCodeTTL"`
	UnverifiedAccountTTL time.Duration `json:"unverifiedAccountTTL" yaml:"unverifiedAccountTTL"`
}

type CookieConfig struct {
	Name   string        `json:"name" yaml:"name"`
	Domain string        `json:"domain" yaml:"domain"`
	Secure bool          `json:"secure" yaml:"secure"`
	MaxAge time.Duration `json:"maxAge" yaml:"maxAge"`
}

type ClientConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

// OAuthConfig holds the per-provider client registrations.
type OAuthConfig struct {
	Google OAuthProviderConfig `json:"google" yaml:"google"`
	Kakao  OAuthProviderConfig `json:"kakao" yaml:"kakao"`
	Naver  OAuthProviderConfig `json:"naver" yaml:"naver"`
}

// OAuthProviderConfig endpoint URLs are optional; empty values fall back to the provider's public endpoints.
type OAuthProviderConfig struct {
	ClientID     string `json:"clientId" yaml:"clientId"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
	RedirectURI  string `json:"redirectUri" yaml:"redirectUri"`
	Scopes       string `json:"scopes" yaml:"scopes"`
	AuthURL      string `json:"authUrl" yaml:"authUrl"`
	TokenURL     string `json:"tokenUrl" yaml:"tokenUrl"`
	UserInfoURL  string `json:"userInfoUrl" yaml:"userInfoUrl"`
}

type MailConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	UserName string `json:"userName" yaml:"userName"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"`
}

// StorageConfig points at a gocloud blob bucket, e.g. file:///var/avatars or s3://bucket?region=ap-northeast-2.
type StorageConfig struct {
	BucketURL     string `json:"bucketUrl" yaml:"bucketUrl"`
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
}

// LocalMount returns the url path and directory to serve uploads from when the bucket is a
// local file:// bucket. Remote buckets publish their own urls and report false.
func (c *StorageConfig) LocalMount() (string, string, bool) {
	if c == nil {
		return "", "", false
	}
	bucket, err := url.Parse(c.BucketURL)
	if err != nil || bucket.Scheme != "file" || bucket.Path == "" {
		return "", "", false
	}
	public, err := url.Parse(c.PublicBaseURL)
	if err != nil {
		return "", "", false
	}
	prefix := "/" + strings.Trim(public.Path, "/")
	if prefix == "/" {
		return "", "", false
	}

	return prefix, filepath.FromSlash(bucket.Path), true
}

type WorkerConfig struct {
	CleanupInterval time.Duration `json:"cleanupInterval" yaml:"cleanupInterval"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// SECRETKEY_ACCESS -> secretKey.access, aligned with the YAML key casing.
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		if replicas := buildReplicasFromEnv(); len(replicas) > 0 {
			cfg.Postgres.Replicas = replicas
		}
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 10
	}
	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = time.Hour
	}
	if cfg.Auth.RefreshTokenTTL == 0 {
		cfg.Auth.RefreshTokenTTL = 24 * time.Hour
	}
	if cfg.Auth.VerificationCodeTTL == 0 {
		cfg.Auth.VerificationCodeTTL = 10 * time.Minute
	}
	if cfg.Auth.UnverifiedAccountTTL == 0 {
		cfg.Auth.UnverifiedAccountTTL = 24 * time.Hour
	}

	if cfg.Cookie == nil {
		cfg.Cookie = &CookieConfig{}
	}
	if cfg.Cookie.Name == "" {
		cfg.Cookie.Name = "access"
	}
	if cfg.Cookie.MaxAge == 0 {
		cfg.Cookie.MaxAge = time.Hour
	}

	if cfg.Client == nil {
		cfg.Client = &ClientConfig{}
	}
	if cfg.OAuth == nil {
		cfg.OAuth = &OAuthConfig{}
	}

	if cfg.Worker == nil {
		cfg.Worker = &WorkerConfig{}
	}
	if cfg.Worker.CleanupInterval == 0 {
		cfg.Worker.CleanupInterval = time.Minute
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []ConnectionConfig {
	var replicas []ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
