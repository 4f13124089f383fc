package configs

type ServiceConfig struct {
	ServiceName  string   `mapstructure:"service_name"`
	HttpPort     string   `mapstructure:"http_port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}
