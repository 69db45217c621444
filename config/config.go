package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database     DatabaseConfigs
	ApiServer    ServerConfigs
	Auth         AuthConfigs
	Storage      S3Configs
	File         FileConfigs
	Redis        RedisConfigs
	Retention    RetentionConfigs
	Notification NotificationConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name              string
	ExpirationMinutes int
}

func (t *TokenConfigs) Expiration() time.Duration {
	return time.Duration(t.ExpirationMinutes) * time.Minute
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
	Bucket         string
}

type FileConfigs struct {
	MaxSize        int64
	MaxImageWidth  uint
	MaxImageHeight uint
}

type RedisConfigs struct {
	Addr string
}

// RetentionConfigs drives the two proof purge jobs. The expiry purge enforces
// the short evidence TTL, the quota purge is the long-horizon storage hygiene
// sweep.
type RetentionConfigs struct {
	ExpiryTTLMinutes   int
	ExpiryEveryMinutes int
	QuotaTTLDays       int
	QuotaEveryHours    int
}

func (r *RetentionConfigs) ExpiryTTL() time.Duration {
	return time.Duration(r.ExpiryTTLMinutes) * time.Minute
}

func (r *RetentionConfigs) ExpiryEvery() time.Duration {
	return time.Duration(r.ExpiryEveryMinutes) * time.Minute
}

func (r *RetentionConfigs) QuotaTTL() time.Duration {
	return time.Duration(r.QuotaTTLDays) * 24 * time.Hour
}

func (r *RetentionConfigs) QuotaEvery() time.Duration {
	return time.Duration(r.QuotaEveryHours) * time.Hour
}

type NotificationConfigs struct {
	GatewayRPCServer RPCServerConfigs
}

type RPCServerConfigs struct {
	Endpoint string
	RPCName  string
}
