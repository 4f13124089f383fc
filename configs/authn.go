package configs

type AuthnConfig struct {
	SessionExpireMin   int `mapstructure:"session_expire_min"`
	AccessJwtExpireMin int `mapstructure:"access_jwt_expire_min"`
	BcryptCost         int `mapstructure:"bcrypt_cost"`
}
