package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"pet-clinic-analytics/internal/domain/analytics"
	"pet-clinic-analytics/internal/domain/clinic"
)

const envPrefix = "CLINIC"

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	Analytics AnalyticsConfig
	Tips      TipsConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig: DSN vacío = almacén en memoria con datos demo.
type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// RedisConfig: Addr vacío = sin cache de payloads.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr o path de archivo
}

type AnalyticsConfig struct {
	Timezone         string
	Locale           string
	Prices           map[clinic.EventCategory]decimal.Decimal
	EncounterPrice   decimal.Decimal
	HighValueMin     int
	MediumValueMin   int
	TopN             int
	DaysPerYear      int
	DefaultDays      int
	MaxDays          int
	OverviewMonths   int
	BatchConcurrency int
}

type TipsConfig struct {
	TTL time.Duration
}

type SeedConfig struct {
	Practitioners []string
	Owners        int
	Months        int
	RandomSeed    int64
}

// Load lee la configuración. Prioridad (mayor a menor):
// 1. Variables de entorno CLINIC_* (ej: CLINIC_DATABASE_DSN) y las legacy PORT, DB_DSN, LOG_LEVEL...
// 2. config.yaml en los paths indicados (por defecto "." y "/app")
// 3. Defaults
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "/app"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	prices, err := parsePrices(v.GetStringMap("analytics.prices"))
	if err != nil {
		return nil, err
	}
	encounterPrice, err := decimal.NewFromString(v.GetString("analytics.encounter_price"))
	if err != nil {
		return nil, fmt.Errorf("analytics.encounter_price: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("database.dsn"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Analytics: AnalyticsConfig{
			Timezone:         v.GetString("analytics.timezone"),
			Locale:           v.GetString("analytics.locale"),
			Prices:           prices,
			EncounterPrice:   encounterPrice,
			HighValueMin:     v.GetInt("analytics.high_value_min"),
			MediumValueMin:   v.GetInt("analytics.medium_value_min"),
			TopN:             v.GetInt("analytics.top_n"),
			DaysPerYear:      v.GetInt("analytics.days_per_year"),
			DefaultDays:      v.GetInt("analytics.default_days"),
			MaxDays:          v.GetInt("analytics.max_days"),
			OverviewMonths:   v.GetInt("analytics.overview_months"),
			BatchConcurrency: v.GetInt("analytics.batch_concurrency"),
		},
		Tips: TipsConfig{
			TTL: v.GetDuration("tips.ttl"),
		},
		Seed: SeedConfig{
			Practitioners: v.GetStringSlice("seed.practitioners"),
			Owners:        v.GetInt("seed.owners"),
			Months:        v.GetInt("seed.months"),
			RandomSeed:    v.GetInt64("seed.random_seed"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pet-clinic-analytics")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("analytics.timezone", "America/Sao_Paulo")
	v.SetDefault("analytics.locale", "pt-BR")
	v.SetDefault("analytics.prices", map[string]any{
		string(clinic.CategoryEncounter):  "80",
		string(clinic.CategoryVaccine):    "100",
		string(clinic.CategoryExam):       "150",
		string(clinic.CategoryMedication): "60",
		string(clinic.CategoryOther):      "120",
	})
	v.SetDefault("analytics.encounter_price", "150")
	v.SetDefault("analytics.high_value_min", 5)
	v.SetDefault("analytics.medium_value_min", 2)
	v.SetDefault("analytics.top_n", 10)
	v.SetDefault("analytics.days_per_year", 365)
	v.SetDefault("analytics.default_days", 7)
	v.SetDefault("analytics.max_days", analytics.DefaultMaxDays)
	v.SetDefault("analytics.overview_months", 6)
	v.SetDefault("analytics.batch_concurrency", 4)

	v.SetDefault("tips.ttl", 5*time.Second)

	v.SetDefault("seed.practitioners", []string{
		"MV Paulo Alelúia",
		"MV Cleber Azevedo Souza",
		"MV Ana Carolinna Piazza",
		"MV Camila Banborra",
	})
	v.SetDefault("seed.owners", 20)
	v.SetDefault("seed.months", 6)
	v.SetDefault("seed.random_seed", 42)
}

// bindLegacyEnv mantiene las variables que ya usaba el deploy (PORT, DB_DSN...).
// CLINIC_* tiene prioridad porque viper toma el primer nombre definido.
func bindLegacyEnv(v *viper.Viper) error {
	legacy := map[string]string{
		"app.port":     "PORT",
		"app.name":     "APP_NAME",
		"database.dsn": "DB_DSN",
		"log.level":    "LOG_LEVEL",
		"log.format":   "LOG_FORMAT",
		"redis.addr":   "REDIS_ADDR",
	}
	for key, env := range legacy {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	return nil
}

// parsePrices aplica los precios configurados sobre la tabla por defecto:
// una categoría que falta en config.yaml conserva su precio.
// viper entrega las claves de mapas en minúscula.
func parsePrices(raw map[string]any) (map[clinic.EventCategory]decimal.Decimal, error) {
	out := make(map[clinic.EventCategory]decimal.Decimal, len(clinic.EventCategories()))
	for cat, p := range analytics.DefaultPriceTable() {
		out[cat] = p
	}
	for k, val := range raw {
		d, err := decimal.NewFromString(strings.TrimSpace(fmt.Sprint(val)))
		if err != nil {
			return nil, fmt.Errorf("analytics.prices.%s: %w", k, err)
		}
		out[clinic.EventCategory(strings.ToUpper(k))] = d
	}
	return out, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Port) == "" {
		return errors.New("app.port is required")
	}
	if _, err := time.LoadLocation(c.Analytics.Timezone); err != nil {
		return fmt.Errorf("analytics.timezone %q: %w", c.Analytics.Timezone, err)
	}
	for _, cat := range clinic.EventCategories() {
		if _, ok := c.Analytics.Prices[cat]; !ok {
			return fmt.Errorf("analytics.prices.%s is required", cat)
		}
	}
	for cat, p := range c.Analytics.Prices {
		if p.IsNegative() {
			return fmt.Errorf("analytics.prices.%s must not be negative", cat)
		}
	}
	if !c.Analytics.EncounterPrice.IsPositive() {
		return errors.New("analytics.encounter_price must be positive")
	}
	if c.Analytics.HighValueMin <= 0 || c.Analytics.MediumValueMin <= 0 {
		return errors.New("analytics value tier thresholds must be positive")
	}
	if c.Analytics.MediumValueMin > c.Analytics.HighValueMin {
		return errors.New("analytics.medium_value_min must not exceed analytics.high_value_min")
	}
	if c.Analytics.TopN <= 0 || c.Analytics.DaysPerYear <= 0 || c.Analytics.DefaultDays <= 0 || c.Analytics.OverviewMonths <= 0 {
		return errors.New("analytics top_n, days_per_year, default_days and overview_months must be positive")
	}
	if c.Analytics.MaxDays < c.Analytics.DefaultDays {
		return errors.New("analytics.max_days must be at least analytics.default_days")
	}
	if c.Tips.TTL <= 0 {
		return errors.New("tips.ttl must be positive")
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return errors.New("redis.ttl must be positive when redis.addr is set")
	}
	return nil
}

// AnalyticsConfig arma la configuración del motor de métricas.
func (c *Config) AnalyticsConfig() (analytics.Config, error) {
	loc, err := time.LoadLocation(c.Analytics.Timezone)
	if err != nil {
		return analytics.Config{}, err
	}

	out := analytics.DefaultConfig()
	out.Location = loc
	out.Locale = analytics.MatchLocale(c.Analytics.Locale)
	out.ProcedurePrices = analytics.PriceTable(c.Analytics.Prices)
	out.EncounterPrice = c.Analytics.EncounterPrice
	out.HighValueMin = c.Analytics.HighValueMin
	out.MediumValueMin = c.Analytics.MediumValueMin
	out.TopN = c.Analytics.TopN
	out.DaysPerYear = c.Analytics.DaysPerYear
	out.DefaultDays = c.Analytics.DefaultDays
	out.MaxDays = c.Analytics.MaxDays
	out.OverviewMonths = c.Analytics.OverviewMonths
	out.BatchConcurrency = c.Analytics.BatchConcurrency

	if err := out.Validate(); err != nil {
		return analytics.Config{}, err
	}
	return out, nil
}
