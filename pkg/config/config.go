package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/money/pkg/money"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CurrencyDefinition is a custom currency as declared in the currencies file.
type CurrencyDefinition struct {
	Code  string `mapstructure:"code" validate:"required,len=3,uppercase,alpha"`
	Scale uint8  `mapstructure:"scale" validate:"lte=18"`
	Name  string `mapstructure:"name"`
}

// Config holds the money registry configuration.
type Config struct {
	CurrenciesFile string
	Currencies     []CurrencyDefinition

	logger *slog.Logger
}

var validate = validator.New()

// LoadConfig loads configuration from environment variables and .env file if
// present. When MONEY_CURRENCIES_FILE is set, the file's `currencies` list is
// read and validated.
func LoadConfig() (*Config, error) {
	return LoadConfigWithLogger(slog.Default())
}

// LoadConfigWithLogger is LoadConfig with an explicit logger for warnings.
func LoadConfigWithLogger(logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	env := viper.New()
	env.SetDefault("MONEY_CURRENCIES_FILE", "")
	env.AutomaticEnv()

	cfg := &Config{
		CurrenciesFile: env.GetString("MONEY_CURRENCIES_FILE"),
		logger:         logger,
	}
	if cfg.CurrenciesFile == "" {
		return cfg, nil
	}

	defs, err := readCurrencies(cfg.CurrenciesFile)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		logger.Warn("Currencies file declares no currencies", slog.String("file", cfg.CurrenciesFile))
	}
	cfg.Currencies = defs
	return cfg, nil
}

func readCurrencies(path string) ([]CurrencyDefinition, error) {
	file := viper.New()
	file.SetConfigFile(path)
	if err := file.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read currencies file %s: %w", path, err)
	}

	var defs []CurrencyDefinition
	if err := file.UnmarshalKey("currencies", &defs); err != nil {
		return nil, fmt.Errorf("failed to decode currencies in %s: %w", path, err)
	}
	for i, def := range defs {
		if err := validate.Struct(def); err != nil {
			return nil, fmt.Errorf("%w: currencies[%d] in %s: %s", money.ErrInvalidCurrency, i, path, describe(err))
		}
	}
	return defs, nil
}

// Registry builds the currency registry described by the configuration.
func (c *Config) Registry() (*money.Registry, error) {
	logger := c.logger
	if logger == nil {
		logger = slog.Default()
	}
	custom := make([]money.Currency, 0, len(c.Currencies))
	for _, def := range c.Currencies {
		if money.IsISO(def.Code) {
			logger.Warn("Custom currency overrides ISO 4217 definition",
				slog.String("code", def.Code),
				slog.Int("scale", int(def.Scale)))
		}
		custom = append(custom, money.Currency{Code: def.Code, Scale: def.Scale, Name: def.Name})
	}
	reg, err := money.NewRegistry(custom...)
	if err != nil {
		return nil, fmt.Errorf("failed to build currency registry: %w", err)
	}
	return reg, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s'", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, ", ")
}
