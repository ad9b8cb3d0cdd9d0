package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

// Fontes de dados suportadas em DATA_SOURCE
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// tableNamePattern aceita "tabela" ou "schema.tabela"
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Config reúne todas as seções da configuração, lidas de variáveis de ambiente
type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Dataset   Dataset   `mapstructure:",squash"`
	Report    Report    `mapstructure:",squash"`
	Chart     Chart     `mapstructure:",squash"`
	RateLimit RateLimit `mapstructure:",squash"`
	CORS      CORS      `mapstructure:",squash"`
	Proxy     Proxy     `mapstructure:",squash"`
	KPIDigest KPIDigest `mapstructure:",squash"`
}

// Server é o endereço de escuta da API
type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Database são as partes do DSN do Postgres. DSN é montado em NewConfig
type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

// App são as configurações gerais do processo
type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Dataset define de onde a base de registros é lida na inicialização
type Dataset struct {
	Source     string `mapstructure:"data_source"`
	Path       string `mapstructure:"data_path"`
	SalesTable string `mapstructure:"sales_table"`
}

// Report ajusta o cálculo do resumo
type Report struct {
	TopN int `mapstructure:"top_n"`
}

// Chart é o tamanho das imagens dos gráficos
type Chart struct {
	Width  int `mapstructure:"chart_width"`
	Height int `mapstructure:"chart_height"`
}

// RateLimit configura o limitador de requisições por IP
type RateLimit struct {
	Enabled bool    `mapstructure:"rate_limit_enabled"`
	RPS     float64 `mapstructure:"rate_limit_rps"`
	Burst   int     `mapstructure:"rate_limit_burst"`
}

// CORS lista as origens permitidas
type CORS struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Proxy lista os proxies reversos autorizados a definir os headers de encaminhamento
type Proxy struct {
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// KPIDigest configura o job de digest dos KPIs
type KPIDigest struct {
	CronSchedule string `mapstructure:"kpi_digest_cron"`
	Enabled      bool   `mapstructure:"kpi_digest_enabled"`
}

// SetDefaults registra os valores padrão de cada chave
func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8050")

	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DATA_SOURCE", SourceCSV)
	viper.SetDefault("DATA_PATH", "data/ventas.csv")
	viper.SetDefault("SALES_TABLE", "ventas")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ventas")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("TOP_N", 5)

	viper.SetDefault("CHART_WIDTH", 800)
	viper.SetDefault("CHART_HEIGHT", 400)

	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("TRUSTED_PROXIES", []string{})

	viper.SetDefault("KPI_DIGEST_CRON", "0 7 * * *") // todos os dias às 7h
	viper.SetDefault("KPI_DIGEST_ENABLED", false)
}

// NewConfig lê o .env e as variáveis de ambiente, aplica os padrões e valida o resultado
func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("config: .env não lido pelo viper, usando variáveis de ambiente: ", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejeita configurações com as quais o serviço não consegue subir
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Path == "" {
			return errors.New("config: DATA_PATH is required when DATA_SOURCE is csv")
		}
	case SourcePostgres:
		if !tableNamePattern.MatchString(c.Dataset.SalesTable) {
			return errors.Errorf("config: invalid SALES_TABLE %q", c.Dataset.SalesTable)
		}
	default:
		return errors.Errorf("config: unknown DATA_SOURCE %q", c.Dataset.Source)
	}

	if c.Report.TopN < 1 {
		return errors.Errorf("config: TOP_N must be at least 1, got %d", c.Report.TopN)
	}

	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return errors.Errorf("config: chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return errors.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	for _, proxy := range c.Proxy.TrustedProxies {
		if _, err := middleware.ParseProxy(proxy); err != nil {
			return errors.Errorf("config: invalid TRUSTED_PROXIES entry %q", proxy)
		}
	}

	return nil
}

// Addr é o endereço de escuta do servidor HTTP
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// loadEnvFile procura um .env no diretório atual e nos diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: não foi possível obter o diretório de trabalho: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("config: .env carregado de ", location)
			return
		}
	}

	logrus.Debug("config: nenhum arquivo .env encontrado")
}
