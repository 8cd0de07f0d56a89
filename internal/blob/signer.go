package blob

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// URLSigner issues and verifies the expiring tokens embedded in asset URLs.
type URLSigner struct {
	secret []byte
}

func NewURLSigner(secret string) *URLSigner {
	return &URLSigner{secret: []byte(secret)}
}

type assetClaims struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	jwt.RegisteredClaims
}

func (s *URLSigner) Sign(bucket, key string, ttl time.Duration) (string, error) {
	claims := assetClaims{
		Bucket: bucket,
		Key:    key,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign asset token: %w", err)
	}
	return signed, nil
}

// Verify returns the bucket and key a valid, unexpired token grants
// access to.
func (s *URLSigner) Verify(tokenString string) (bucket, key string, err error) {
	var claims assetClaims
	_, err = jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("verify asset token: %w", err)
	}
	return claims.Bucket, claims.Key, nil
}
