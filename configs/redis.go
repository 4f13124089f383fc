package configs

type RedisConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Database  int      `mapstructure:"database"`
	Tls       bool     `mapstructure:"tls"`
}
