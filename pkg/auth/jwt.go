package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig holds the configuration for issuing and validating tokens.
// Exactly one of Secret, PrivateKeyPEM, or PublicKeyPEM must be set:
// an HMAC secret allows both signing and validation, a private key
// allows RSA signing and validation, and a public key allows RSA
// validation only.
type JWTConfig struct {
	Secret        string
	PrivateKeyPEM string
	PublicKeyPEM  string
	SigningMethod string
	Issuer        string
	Expiration    time.Duration
}

// JWTService issues and validates JWTs for the assessment API.
type JWTService struct {
	config     JWTConfig
	signingKey any
	verifyKey  any
	method     jwt.SigningMethod
}

// NewJWTService builds a JWTService from config. It returns an error
// when no key material is provided or the PEM blocks cannot be parsed.
func NewJWTService(config JWTConfig) (*JWTService, error) {
	if config.Expiration == 0 {
		config.Expiration = 24 * time.Hour
	}

	svc := &JWTService{config: config}

	switch {
	case config.PrivateKeyPEM != "":
		privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(config.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parsing RSA private key: %w", err)
		}
		svc.signingKey = privateKey
		svc.verifyKey = &privateKey.PublicKey
		svc.method = jwt.SigningMethodRS256
	case config.PublicKeyPEM != "":
		publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(config.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parsing RSA public key: %w", err)
		}
		svc.verifyKey = publicKey
		svc.method = jwt.SigningMethodRS256
	case config.Secret != "":
		svc.signingKey = []byte(config.Secret)
		svc.verifyKey = []byte(config.Secret)
		svc.method = jwt.SigningMethodHS256
	default:
		return nil, fmt.Errorf("jwt config requires a secret, private key, or public key")
	}

	return svc, nil
}

// GenerateToken issues a signed token for the given user.
func (s *JWTService) GenerateToken(userID uuid.UUID, username string, roles []string) (string, error) {
	if s.signingKey == nil {
		return "", fmt.Errorf("jwt service is validate-only: no signing key configured")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			ID:        uuid.NewString(),
		},
		UserID:   userID,
		Username: username,
		Roles:    roles,
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a token string, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.verifyKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// LoadKeyFromFile reads PEM key material from disk.
func LoadKeyFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading key file %s: %w", path, err)
	}
	return string(data), nil
}

// GenerateKeyPair creates a new RSA key pair encoded as PEM. Intended
// for development and tests.
func GenerateKeyPair(bits int) (privatePEM, publicPEM string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return "", "", fmt.Errorf("generating RSA key: %w", err)
	}

	privateBlock := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("encoding public key: %w", err)
	}
	publicBlock := &pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	}

	return string(pem.EncodeToMemory(privateBlock)), string(pem.EncodeToMemory(publicBlock)), nil
}
