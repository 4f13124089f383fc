package configs

type Secrets struct {
	SessionSecret   string `mapstructure:"session_secret"`
	EcdsaPrivateKey string `mapstructure:"ecdsa_private_key"`
	EcdsaPublicKey  string `mapstructure:"ecdsa_public_key"`
	WebhookSecret   string `mapstructure:"webhook_secret"`
}
