// Package logger はzapを薄く包んだ構造化ロガーを提供する
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger はアプリケーション全体で使うログインターフェース。
// keysAndValues は "key", value の組で渡す
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	WithFields(keysAndValues ...interface{}) Logger
}

// Config はロガーの設定
type Config struct {
	Level  string
	Format string
	// Output の既定は標準エラー出力。標準出力はコマンドの結果表示に使う
	Output io.Writer
}

// Option はロガーの設定オプション
type Option func(*Config)

func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

// WithFormat は text か json を指定する
func WithFormat(format string) Option {
	return func(c *Config) { c.Format = format }
}

func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Output = w }
}

// 受け付けるレベル。dpanic などzap固有のレベルは扱わない
var levels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// New は設定からロガーを作成する
func New(opts ...Option) (Logger, error) {
	cfg := &Config{Level: "info", Format: "text", Output: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}

	level, ok := levels[cfg.Level]
	if !ok {
		return nil, fmt.Errorf("invalid log level: %q", cfg.Level)
	}
	enc, err := newEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(cfg.Output), level)
	return wrap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))), nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder

	switch format {
	case "json":
		return zapcore.NewJSONEncoder(ec), nil
	case "text":
		return zapcore.NewConsoleEncoder(ec), nil
	}
	return nil, fmt.Errorf("invalid log format: %q (expected text or json)", format)
}

// NewWithCore はテストでobserverのcoreを差し込むために使う
func NewWithCore(core zapcore.Core) Logger {
	return wrap(zap.New(core, zap.AddCallerSkip(1)))
}

// Nop は何も出力しないロガーを返す
func Nop() Logger {
	return wrap(zap.NewNop())
}

type sugared struct {
	s *zap.SugaredLogger
}

func wrap(l *zap.Logger) Logger {
	return &sugared{s: l.Sugar()}
}

func (l *sugared) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l *sugared) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l *sugared) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l *sugared) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }

// WithFields は親を変更せず、フィールドを追加したロガーを返す
func (l *sugared) WithFields(kv ...interface{}) Logger {
	return &sugared{s: l.s.With(kv...)}
}
