package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "Local"
	configPathEnv   = "NEWSRISK_CONFIG"
	logLevelEnv     = "LOG_LEVEL"
	llmProviderEnv  = "LLM_PROVIDER"
	openAIAPIKeyEnv = "OPENAI_API_KEY"
	openAIModelEnv  = "OPENAI_MODEL"
	geminiAPIKeyEnv = "GEMINI_API_KEY"
	searchCXEnv     = "GOOGLE_CUSTOMSEARCH_CX_KEY"
	searchAPIKeyEnv = "GOOGLE_CUSTOMSEARCH_API_KEY"
	telegramToken   = "TELEGRAM_BOT_TOKEN"
	telegramChatID  = "TELEGRAM_CHAT_ID"
)

// Provider names accepted in llm.provider.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Search        SearchConfig       `yaml:"search"`
	LLM           LLMConfig          `yaml:"llm"`
	Artifacts     ArtifactConfig     `yaml:"artifacts"`
	Prompts       PromptConfig       `yaml:"prompts"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig selects level and destination of log lines.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
}

// SearchConfig describes the Google Custom Search request.
type SearchConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	CX           string        `yaml:"cx"`
	APIKey       string        `yaml:"apiKey"`
	Terms        []string      `yaml:"terms"`
	Country      string        `yaml:"country"`
	Language     string        `yaml:"language"`
	DateRestrict string        `yaml:"dateRestrict"`
	Num          int           `yaml:"num"`
	Start        int           `yaml:"start"`
	Filter       *bool         `yaml:"filter"`
	Timeout      time.Duration `yaml:"timeout"`
}

// FilterDuplicates reports whether the duplicate content filter is on.
func (s SearchConfig) FilterDuplicates() bool {
	return s.Filter == nil || *s.Filter
}

// LLMConfig picks the completion provider.
type LLMConfig struct {
	Provider          string       `yaml:"provider"`
	RequestsPerMinute int          `yaml:"requestsPerMinute"`
	OpenAI            OpenAIConfig `yaml:"openai"`
	Gemini            GeminiConfig `yaml:"gemini"`
}

// OpenAIConfig defines how to contact an OpenAI-compatible chat API.
type OpenAIConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"apiKey"`
	Timeout  time.Duration `yaml:"timeout"`
}

// GeminiConfig defines how to contact the Gemini API.
type GeminiConfig struct {
	Model   string        `yaml:"model"`
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// ArtifactConfig lists the stage directories, relative to BaseDir.
type ArtifactConfig struct {
	BaseDir       string `yaml:"baseDir"`
	NewsDir       string `yaml:"newsDir"`
	OutputDir     string `yaml:"outputDir"`
	ClaimsDir     string `yaml:"claimsDir"`
	AssessmentDir string `yaml:"assessmentDir"`
	ContractsDir  string `yaml:"contractsDir"`
	JSONDir       string `yaml:"jsonDir"`
}

// PromptConfig overrides the built-in instructions. Empty means default.
type PromptConfig struct {
	Summary      string `yaml:"summary"`
	ActionPoints string `yaml:"actionPoints"`
	Fulfillment  string `yaml:"fulfillment"`
	Claims       string `yaml:"claims"`
	Contracts    string `yaml:"contracts"`
}

// PipelineConfig tunes stage execution.
type PipelineConfig struct {
	FulfillConcurrency int `yaml:"fulfillConcurrency"`
}

// SchedulerConfig defines when scheduled runs happen.
type SchedulerConfig struct {
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.Local
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether both bot token and chat are set.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Load reads the YAML file named by NEWSRISK_CONFIG (if set) and applies environment overrides.
func Load() (Config, error) {
	return LoadFrom(os.Getenv(configPathEnv))
}

// LoadFrom reads YAML configuration from path (if non-empty) and applies environment overrides.
func LoadFrom(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()
	if err := cfg.bindTimezone(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ValidateSearch checks the credentials required by the search stage.
func (c Config) ValidateSearch() error {
	if c.Search.CX == "" {
		return missingEnv(searchCXEnv)
	}
	if c.Search.APIKey == "" {
		return missingEnv(searchAPIKeyEnv)
	}
	return nil
}

// ValidateLLM checks the credentials of the selected completion provider.
func (c Config) ValidateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAI.APIKey == "" {
			return missingEnv(openAIAPIKeyEnv)
		}
	case ProviderGemini:
		if c.LLM.Gemini.APIKey == "" {
			return missingEnv(geminiAPIKeyEnv)
		}
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}
	return nil
}

func missingEnv(name string) error {
	return fmt.Errorf("environment variable %s is not set", name)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(llmProviderEnv); v != "" {
		c.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.LLM.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.LLM.OpenAI.Model = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.LLM.Gemini.APIKey = v
	}

	if v := os.Getenv(searchCXEnv); v != "" {
		c.Search.CX = v
	}

	if v := os.Getenv(searchAPIKeyEnv); v != "" {
		c.Search.APIKey = v
	}

	if v := os.Getenv(telegramToken); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatID); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() error {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("config: unknown timezone %s: %w", tz, err)
	}
	c.Scheduler.location = loc
	return nil
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Output != "" {
		base.Logging.Output = override.Logging.Output
	}

	base.Search = mergeSearch(base.Search, override.Search)
	base.LLM = mergeLLM(base.LLM, override.LLM)

	if override.Artifacts.BaseDir != "" {
		base.Artifacts.BaseDir = override.Artifacts.BaseDir
	}
	if override.Artifacts.NewsDir != "" {
		base.Artifacts.NewsDir = override.Artifacts.NewsDir
	}
	if override.Artifacts.OutputDir != "" {
		base.Artifacts.OutputDir = override.Artifacts.OutputDir
	}
	if override.Artifacts.ClaimsDir != "" {
		base.Artifacts.ClaimsDir = override.Artifacts.ClaimsDir
	}
	if override.Artifacts.AssessmentDir != "" {
		base.Artifacts.AssessmentDir = override.Artifacts.AssessmentDir
	}
	if override.Artifacts.ContractsDir != "" {
		base.Artifacts.ContractsDir = override.Artifacts.ContractsDir
	}
	if override.Artifacts.JSONDir != "" {
		base.Artifacts.JSONDir = override.Artifacts.JSONDir
	}

	if override.Prompts.Summary != "" {
		base.Prompts.Summary = override.Prompts.Summary
	}
	if override.Prompts.ActionPoints != "" {
		base.Prompts.ActionPoints = override.Prompts.ActionPoints
	}
	if override.Prompts.Fulfillment != "" {
		base.Prompts.Fulfillment = override.Prompts.Fulfillment
	}
	if override.Prompts.Claims != "" {
		base.Prompts.Claims = override.Prompts.Claims
	}
	if override.Prompts.Contracts != "" {
		base.Prompts.Contracts = override.Prompts.Contracts
	}

	if override.Pipeline.FulfillConcurrency > 0 {
		base.Pipeline.FulfillConcurrency = override.Pipeline.FulfillConcurrency
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	return base
}

func mergeSearch(base, override SearchConfig) SearchConfig {
	if override.Endpoint != "" {
		base.Endpoint = override.Endpoint
	}
	if override.CX != "" {
		base.CX = override.CX
	}
	if override.APIKey != "" {
		base.APIKey = override.APIKey
	}
	if len(override.Terms) > 0 {
		base.Terms = override.Terms
	}
	if override.Country != "" {
		base.Country = override.Country
	}
	if override.Language != "" {
		base.Language = override.Language
	}
	if override.DateRestrict != "" {
		base.DateRestrict = override.DateRestrict
	}
	if override.Num > 0 {
		base.Num = override.Num
	}
	if override.Start > 0 {
		base.Start = override.Start
	}
	if override.Filter != nil {
		base.Filter = override.Filter
	}
	if override.Timeout > 0 {
		base.Timeout = override.Timeout
	}
	return base
}

func mergeLLM(base, override LLMConfig) LLMConfig {
	if override.Provider != "" {
		base.Provider = strings.ToLower(strings.TrimSpace(override.Provider))
	}
	if override.RequestsPerMinute > 0 {
		base.RequestsPerMinute = override.RequestsPerMinute
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.Timeout > 0 {
		base.OpenAI.Timeout = override.OpenAI.Timeout
	}

	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}
	if override.Gemini.BaseURL != "" {
		base.Gemini.BaseURL = override.Gemini.BaseURL
	}
	if override.Gemini.Timeout > 0 {
		base.Gemini.Timeout = override.Gemini.Timeout
	}
	return base
}

// DefaultSearchTerms are the cyber-risk phrases searched when none are configured.
func DefaultSearchTerms() []string {
	return []string{
		"cybersecurity risk",
		"cyber threat",
		"data breach",
		"ransomware attack",
		"phishing",
		"malware",
		"cyber attack",
		"information security",
		"cyber insurance",
		"data protection",
		"privacy regulations",
		"data security regulations",
		"cybersecurity legislation",
		"GDPR compliance",
		"HIPAA compliance",
		"PCI DSS compliance",
		"regulatory requirements for insurers",
		"cyber risk management",
		"cyber resilience",
		"incident response",
		"security breach",
		"cyber risk assessment",
		"cybersecurity best practices",
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "debug", Output: "stdout"},
		Search: SearchConfig{
			Endpoint:     "https://www.googleapis.com/customsearch/v1",
			Terms:        DefaultSearchTerms(),
			Country:      "countryUS",
			Language:     "lang_en",
			DateRestrict: "m1",
			Num:          10,
			Start:        1,
			Timeout:      20 * time.Second,
		},
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
			OpenAI: OpenAIConfig{
				Endpoint: "https://api.openai.com/v1/chat/completions",
				Model:    "gpt-4",
				Timeout:  5 * time.Minute,
			},
			Gemini: GeminiConfig{
				Model:   "gemini-2.0-flash",
				Timeout: 5 * time.Minute,
			},
		},
		Artifacts: ArtifactConfig{
			BaseDir:       ".",
			NewsDir:       "news",
			OutputDir:     "output",
			ClaimsDir:     "claims",
			AssessmentDir: "assessment",
			ContractsDir:  "contracts",
			JSONDir:       "json",
		},
		Pipeline:  PipelineConfig{FulfillConcurrency: 1},
		Scheduler: SchedulerConfig{Interval: 24 * time.Hour, Timezone: defaultTimezone},
	}
}

// String renders a redacted view of the configuration for debug logs.
func (c Config) String() string {
	return "provider=" + c.LLM.Provider +
		" model=" + c.model() +
		" search_num=" + strconv.Itoa(c.Search.Num) +
		" base_dir=" + c.Artifacts.BaseDir
}

func (c Config) model() string {
	if c.LLM.Provider == ProviderGemini {
		return c.LLM.Gemini.Model
	}
	return c.LLM.OpenAI.Model
}
