package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
)

const (
	BackendMemory = "memory"
	BackendBadger = "badger"

	ScopeMeeting = "meeting"
	ScopeGlobal  = "global"
)

type Config struct {
	Host      string `env:"HOST,default=0.0.0.0"`
	Port      int    `env:"PORT,default=8080"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=console"`
	StaticDir string `env:"STATIC_DIR,default=./static"`

	DirectoryBackend string `env:"DIRECTORY_BACKEND,default=memory"`
	BadgerPath       string `env:"BADGER_PATH,default=./data/huddle"`

	AdmissionSecret  string        `env:"ADMISSION_SECRET"`
	AdmissionTTL     time.Duration `env:"ADMISSION_TTL,default=12h"`
	RequireAdmission bool          `env:"REQUIRE_ADMISSION,default=false"`

	BroadcastScope string `env:"BROADCAST_SCOPE,default=meeting"`
	WrapSignals    bool   `env:"WRAP_SIGNALS,default=false"`

	WSMaxMessageBytes int           `env:"WS_MAX_MESSAGE_BYTES,default=65536"`
	WSSendBuffer      int           `env:"WS_SEND_BUFFER,default=64"`
	WSWriteTimeout    time.Duration `env:"WS_WRITE_TIMEOUT,default=10s"`
	WSPongTimeout     time.Duration `env:"WS_PONG_TIMEOUT,default=60s"`
	WSPingInterval    time.Duration `env:"WS_PING_INTERVAL,default=50s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`

	ICEServersJSON string `env:"ICE_SERVERS_JSON"`
	StunURLs       string `env:"STUN_URLS,default=stun:stun.l.google.com:19302"`
	TurnURLs       string `env:"TURN_URLS"`
	TurnUsername   string `env:"TURN_USERNAME"`
	TurnCredential string `env:"TURN_CREDENTIAL"`

	FrameOverlayEnabled bool `env:"FRAME_OVERLAY_ENABLED,default=false"`

	// ICEServers is resolved by Load from the ICE_* / STUN_* / TURN_* keys.
	ICEServers []webrtc.ICEServer
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return FromEnvSet(es)
}

// FromEnvSet builds and validates a Config from es.
func FromEnvSet(es env.EnvSet) (Config, error) {
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	servers, err := parseICEServersFromValues(cfg.ICEServersJSON, cfg.StunURLs, cfg.TurnURLs, cfg.TurnUsername, cfg.TurnCredential)
	if err != nil {
		return Config{}, err
	}
	cfg.ICEServers = servers

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) Validate() error {
	var errs []error

	switch c.DirectoryBackend {
	case BackendMemory:
	case BackendBadger:
		if c.BadgerPath == "" {
			errs = append(errs, errors.New("BADGER_PATH is required with the badger backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("DIRECTORY_BACKEND must be %q or %q, got %q", BackendMemory, BackendBadger, c.DirectoryBackend))
	}

	if c.BroadcastScope != ScopeMeeting && c.BroadcastScope != ScopeGlobal {
		errs = append(errs, fmt.Errorf("BROADCAST_SCOPE must be %q or %q, got %q", ScopeMeeting, ScopeGlobal, c.BroadcastScope))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.WSMaxMessageBytes <= 0 {
		errs = append(errs, errors.New("WS_MAX_MESSAGE_BYTES must be positive"))
	}
	if c.WSSendBuffer <= 0 {
		errs = append(errs, errors.New("WS_SEND_BUFFER must be positive"))
	}
	if c.WSWriteTimeout <= 0 || c.WSPongTimeout <= 0 || c.WSPingInterval <= 0 || c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("timeouts and intervals must be positive"))
	}
	if c.WSPingInterval >= c.WSPongTimeout {
		errs = append(errs, fmt.Errorf("WS_PING_INTERVAL (%s) must be shorter than WS_PONG_TIMEOUT (%s)", c.WSPingInterval, c.WSPongTimeout))
	}

	if c.RequireAdmission && c.AdmissionSecret == "" {
		errs = append(errs, errors.New("REQUIRE_ADMISSION needs ADMISSION_SECRET"))
	}
	if c.AdmissionSecret != "" && c.AdmissionTTL <= 0 {
		errs = append(errs, errors.New("ADMISSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// Logger builds the root logger. An unknown level falls back to info.
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if c.LogFormat == "json" {
		l = zerolog.New(os.Stdout)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return l.Level(level).With().Timestamp().Caller().Logger()
}
