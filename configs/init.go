package configs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Tconfigs struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Service  ServiceConfig  `mapstructure:"service"`
	Logs     LogsConfig     `mapstructure:"logs"`
	Secrets  Secrets        `mapstructure:"secrets"`
	Authn    AuthnConfig    `mapstructure:"authn"`
}

var Configs Tconfigs

// Init loads the yaml config file and initializes the global logger.
// Lookup order: explicit path, $CONFIG_PATH, ./configs.yaml, configs/file/configs.yaml.
// Environment variables prefixed with GREENHOUSE_ override file values.
func Init(ConfigPath *string) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("GREENHOUSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var configPath string
	if ConfigPath != nil && *ConfigPath != "" {
		configPath = *ConfigPath
	} else if env := os.Getenv("CONFIG_PATH"); env != "" {
		configPath = env
	} else if _, err := os.Stat("./configs.yaml"); err == nil {
		configPath = "./configs.yaml"
	} else {
		configPath = filepath.Join("configs", "file", "configs.yaml")
	}

	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		os.Stderr.WriteString("Error reading config file: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := v.Unmarshal(&Configs); err != nil {
		os.Stderr.WriteString("Error parsing config file: " + err.Error() + "\n")
		os.Exit(1)
	}

	InitLogger()
}
