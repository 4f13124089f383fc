package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"time"

	"greenhouse-server/configs"
	"greenhouse-server/internal/models"
	"greenhouse-server/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const revokedKeyPrefix = "revoked_jti:"

// Claims is the decoded content of an access token.
type Claims struct {
	UserID    string
	Email     string
	Name      string
	Role      models.Role
	JTI       string
	ExpiresAt time.Time
}

// GenerateAccessToken issues an ES256 access token for the user.
// The role is embedded as a claim so clients can gate their UI without an
// extra fetch; the server re-derives the role for every mutating request.
func GenerateAccessToken(user *models.User) (string, error) {
	privateKeyPEM := configs.Configs.Secrets.EcdsaPrivateKey
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil || block.Type != "EC PRIVATE KEY" {
		return "", errors.New("failed to decode PEM block containing EC private key")
	}

	privateKey, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return "", err
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(configs.Configs.Authn.AccessJwtExpireMin) * time.Minute)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
		"jti":   uuid.NewString(),
		"iss":   configs.Configs.Service.ServiceName,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	return token.SignedString(privateKey)
}

// ParseAccessToken verifies an ES256 token and extracts its claims.
func ParseAccessToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return parsePublicKey(configs.Configs.Secrets.EcdsaPublicKey)
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthErrorWithCause(ErrTokenExpired, "token has expired", err)
		}
		return nil, NewAuthErrorWithCause(ErrInvalidToken, "token verification failed", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, "invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, NewAuthError(ErrInvalidToken, "sub claim not found in token")
	}

	out := &Claims{UserID: sub}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		out.Name = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = models.Role(v)
	}
	if v, ok := claims["jti"].(string); ok {
		out.JTI = v
	}
	if v, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(v), 0)
	}
	return out, nil
}

// RevokeToken denylists a token's JTI in Redis until its natural expiry.
func RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	if repositories.DBS.Redis == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return repositories.DBS.Redis.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsTokenRevoked checks the Redis denylist. A Redis error is treated as
// not revoked; signature and expiry checks still stand on their own.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if repositories.DBS.Redis == nil || jti == "" {
		return false
	}
	n, err := repositories.DBS.Redis.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false
	}
	return n > 0
}

func parsePublicKey(publicKeyPEM string) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing public key")
	}

	pubKeyInterface, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pubKey, ok := pubKeyInterface.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an ECDSA public key")
	}
	return pubKey, nil
}
