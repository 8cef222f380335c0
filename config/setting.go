package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required"`
	Mode        string `koanf:"mode" validate:"required"`
	Concurrency int    `koanf:"concurrency" validate:"required"`
	BodyLimit   int    `koanf:"body_limit" validate:"required"`
	AppName     string `koanf:"app_name" validate:"required"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

type Module string

const (
	ModuleServer    Module = "server"
	ModuleSetting   Module = "setting"
	ModuleKnowledge Module = "knowledge"
	ModulePipeline  Module = "pipeline"
	ModuleGemini    Module = "gemini"
	ModuleSpeech    Module = "speech"
	ModuleMissLog   Module = "misslog"
	ModuleAdmin     Module = "admin"
	ModuleSession   Module = "session"
	ModuleS3        Module = "s3"
)

type geminiConfig struct {
	Key            string `koanf:"key"`
	Model          string `koanf:"model" validate:"required"`
	BaseURL        string `koanf:"base_url" validate:"required"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"required"`
}

type ttsConfig struct {
	Endpoint       string `koanf:"endpoint" validate:"required"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"required"`
}

type knowledgeConfig struct {
	// Plain path or s3://bucket/key of the regulation PDF.
	Path string `koanf:"path" validate:"required"`
}

type missLogConfig struct {
	Path string `koanf:"path" validate:"required"`
}

type adminConfig struct {
	Password string `koanf:"password" validate:"required"`
}

type pipelineConfig struct {
	// Response contract served by the model: minimal, rich or dual.
	Schema string `koanf:"schema" validate:"required,oneof=minimal rich dual"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type config struct {
	Server    serverConfig    `koanf:"server"`
	Gemini    geminiConfig    `koanf:"gemini"`
	TTS       ttsConfig       `koanf:"tts"`
	Knowledge knowledgeConfig `koanf:"knowledge"`
	MissLog   missLogConfig   `koanf:"misslog"`
	Admin     adminConfig     `koanf:"admin"`
	Pipeline  pipelineConfig  `koanf:"pipeline"`
	S3        s3Config        `koanf:"s3"`
	LogLevel  logLevel        `koanf:"log_level"`
}

var defaultConfig = config{
	Server: serverConfig{
		Port:        8000,
		Mode:        "release",
		Concurrency: 64,
		BodyLimit:   16 << 20,
		AppName:     "ligo-assistent",
	},
	Gemini: geminiConfig{
		Key:            "",
		Model:          "gemini-2.5-flash",
		BaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai/",
		TimeoutSeconds: 30,
	},
	TTS: ttsConfig{
		Endpoint:       "https://translate.google.com/translate_tts",
		TimeoutSeconds: 15,
	},
	Knowledge: knowledgeConfig{
		Path: "reglement.pdf",
	},
	MissLog: missLogConfig{
		Path: "gemiste_vragen.csv",
	},
	Admin: adminConfig{
		Password: "admin",
	},
	Pipeline: pipelineConfig{
		Schema: "rich",
	},
	S3: s3Config{
		Region: "us-east-1",
	},
	LogLevel: Info,
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

func init() {
	path := "config.yaml"

	once.Do(func() {
		k := koanf.New(".")

		validate := validator.New()
		// defaults
		Cfg = defaultConfig

		// file
		if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !os.IsNotExist(e) {
			return
		}

		// env APP_GEMINI_KEY, APP_ADMIN_PASSWORD, ...
		if e := k.Load(env.Provider("APP_", ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, "APP_"))
		}), nil); e != nil {
			return
		}

		// bind
		if e := k.Unmarshal("", &Cfg); e != nil {
			log.Errorf("failed to unmarshal config: %v", e)
		}

		// validate config
		if err := validate.Struct(Cfg); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				var sb strings.Builder
				sb.WriteString(fmt.Sprintf("%v Config validation failed:\n", ModuleSetting))

				for _, e := range errs {
					sb.WriteString(
						fmt.Sprintf("  - %s: failed '%s' (value: %v)\n", e.Field(), e.Tag(), e.Value()),
					)
				}

				log.Error(sb.String())
			} else {
				log.Errorf("config validation failed: %v", err)
			}
		}
	})
}
