package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/Flarenzy/ipam-monitor/internal/probe"
	"github.com/spf13/viper"
)

var ErrMissingDSN = errors.New("missing required environment variable: DB_CONN")

type Config struct {
	Port            string
	DSN             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MigrateOnStart  bool

	AuthEnabled   bool
	AuthIssuer    string
	AuthAudience  string
	AuthJWKSURL   string
	AuthWriteRole string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	LogLevel  string
	LogFormat string
	LogFile   string

	ProbeConcurrency int
	ProbeICMPTimeout time.Duration
	ProbeTCPTimeout  time.Duration
	ProbePrivileged  bool

	ConflictWindow   time.Duration
	HistoryRetention time.Duration

	RetentionSchedule   string
	ReservationSchedule string
	ScanSchedule        string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "4040")
	v.SetDefault("read_timeout", 5*time.Second)
	// Subnet pings run inside the request. A dead /24 at the default
	// concurrency needs 16 chunks of up to 4s each. Larger segments belong
	// to the background scan.
	v.SetDefault("write_timeout", 5*time.Minute)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("migrate_on_start", false)

	v.SetDefault("auth_enabled", false)
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_channel", "ipam:notifications")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("probe_concurrency", probe.DefaultConcurrency)
	v.SetDefault("probe_icmp_timeout", probe.DefaultICMPTimeout)
	v.SetDefault("probe_tcp_timeout", probe.DefaultTCPTimeout)
	v.SetDefault("probe_privileged", false)

	v.SetDefault("conflict_window", domain.DefaultConflictWindow)
	v.SetDefault("history_retention", domain.DefaultHistoryRetention)

	v.SetDefault("retention_schedule", "@daily")
	v.SetDefault("reservation_schedule", "@every 5m")
	v.SetDefault("scan_schedule", "")
}

// LoadConfig reads the environment and, when CONFIG_FILE is set, a YAML
// file whose keys are the lower-cased variable names. Environment wins.
func LoadConfig() (Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:            v.GetString("port"),
		DSN:             v.GetString("db_conn"),
		ReadTimeout:     v.GetDuration("read_timeout"),
		WriteTimeout:    v.GetDuration("write_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		MigrateOnStart:  v.GetBool("migrate_on_start"),

		AuthEnabled:   v.GetBool("auth_enabled"),
		AuthIssuer:    v.GetString("auth_issuer"),
		AuthAudience:  v.GetString("auth_audience"),
		AuthJWKSURL:   v.GetString("auth_jwks_url"),
		AuthWriteRole: v.GetString("auth_write_role"),

		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		RedisChannel:  v.GetString("redis_channel"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogFile:   v.GetString("log_file"),

		ProbeConcurrency: v.GetInt("probe_concurrency"),
		ProbeICMPTimeout: v.GetDuration("probe_icmp_timeout"),
		ProbeTCPTimeout:  v.GetDuration("probe_tcp_timeout"),
		ProbePrivileged:  v.GetBool("probe_privileged"),

		ConflictWindow:   v.GetDuration("conflict_window"),
		HistoryRetention: v.GetDuration("history_retention"),

		RetentionSchedule:   v.GetString("retention_schedule"),
		ReservationSchedule: v.GetString("reservation_schedule"),
		ScanSchedule:        v.GetString("scan_schedule"),
	}

	if cfg.DSN == "" {
		return Config{}, ErrMissingDSN
	}
	return cfg, nil
}
