package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid download token")
	ErrTokenExpired = errors.New("download token expired")
)

// DownloadClaim is the content of a signed download token.
type DownloadClaim struct {
	OwnerID   string
	Path      string
	ExpiresAt time.Time
}

// SignedURLSigner issues HMAC-SHA256 signed download tokens of the form owner.expiry.path.signature.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer; ttl <= 0 defaults to one hour.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL reports how long issued tokens stay valid.
func (s *SignedURLSigner) TTL() time.Duration { return s.ttl }

// Generate signs a token granting access to relPath.
func (s *SignedURLSigner) Generate(ownerID, relPath string) (string, time.Time, error) {
	if ownerID == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("owner and path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	parts := []string{
		base64.RawURLEncoding.EncodeToString([]byte(ownerID)),
		strconv.FormatInt(expiresAt.Unix(), 10),
		base64.RawURLEncoding.EncodeToString([]byte(relPath)),
	}
	parts = append(parts, s.sign(parts))
	return strings.Join(parts, "."), expiresAt, nil
}

// Parse verifies the signature and expiry of token.
func (s *SignedURLSigner) Parse(token string) (DownloadClaim, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return DownloadClaim{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.sign(parts[:3])), []byte(parts[3])) {
		return DownloadClaim{}, ErrInvalidToken
	}

	owner, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return DownloadClaim{}, ErrInvalidToken
	}
	expUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return DownloadClaim{}, ErrInvalidToken
	}
	path, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return DownloadClaim{}, ErrInvalidToken
	}

	claim := DownloadClaim{OwnerID: string(owner), Path: string(path), ExpiresAt: time.Unix(expUnix, 0)}
	if s.now().After(claim.ExpiresAt) {
		return claim, ErrTokenExpired
	}
	return claim, nil
}

func (s *SignedURLSigner) sign(parts []string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}
