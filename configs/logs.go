package configs

type LogsConfig struct {
	LogPath    string `mapstructure:"log_path"`
	LogLevel   string `mapstructure:"log_level"`
	StdoutOnly bool   `mapstructure:"stdout_only"`
}
