package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Gamescriptsy/Gradegame/models"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionCookieName carries the signed session token in browser flows. The
// same token is also accepted as an Authorization bearer header.
const SessionCookieName = "session"

// RedisClient is an optional shared Redis client used for session revocation.
// It stays nil when REDIS_ADDR is not configured; revocation then falls back
// to the revoked_sessions table.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	addr = strings.ReplaceAll(addr, " ", "")
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		return
	}
	RedisClient = rc
}

type contextKey string

const PrincipalKey = contextKey("principal")
const RequestIDKey = contextKey("requestID")

// IssueSessionToken signs a session token carrying the principal id and a
// random jti. The role claim is informational; authorization always
// re-resolves the principal from storage.
func IssueSessionToken(id uint, role string, ttl time.Duration) (string, string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", "", errors.New("JWT_SECRET is not set")
	}
	jti, err := generateJTI(32)
	if err != nil {
		return "", "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ValidateSessionToken verifies the signature and registered claims and
// returns the principal id plus the token jti.
func ValidateSessionToken(db *gorm.DB, tokenStr string) (uint, string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return 0, "", errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Require exact HS256 algorithm to avoid algorithm confusion.
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}

	var id uint
	switch v := claims["id"].(type) {
	case float64:
		id = uint(v)
	case int:
		id = uint(v)
	case string:
		var n uint
		_, _ = fmt.Sscanf(v, "%d", &n)
		id = n
	default:
		return 0, "", errors.New("invalid token payload")
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && isRevoked(db, jti) {
		return 0, "", errors.New("token revoked")
	}
	return id, jti, nil
}

func isRevoked(db *gorm.DB, jti string) bool {
	if RedisClient != nil {
		res, err := RedisClient.Get(context.Background(), "session:blacklist:"+jti).Result()
		if err == nil && res == "1" {
			return true
		}
		// ignore redis errors so an outage never locks everyone out
		return false
	}
	if db != nil {
		var rec models.RevokedSession
		if err := db.First(&rec, "id = ?", jti).Error; err == nil {
			return true
		}
	}
	return false
}

// RevokeSession blacklists a jti for ttl. Redis when configured, otherwise
// an upsert into revoked_sessions.
func RevokeSession(db *gorm.DB, jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("empty jti")
	}
	if RedisClient != nil {
		return RedisClient.Set(context.Background(), "session:blacklist:"+jti, "1", ttl).Err()
	}
	if db != nil {
		rec := models.RevokedSession{ID: jti, RevokedAt: time.Now()}
		return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
	}
	return errors.New("no revocation store configured")
}

// SessionTokenFromRequest reads the session token from the cookie or the
// Authorization header.
func SessionTokenFromRequest(r *http.Request) (string, bool) {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")), true
	}
	return "", false
}

// SetSessionCookie attaches the signed token to the response.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetPrincipal extracts the resolved principal from the request context.
func GetPrincipal(r *http.Request) (models.Principal, bool) {
	p, ok := r.Context().Value(PrincipalKey).(models.Principal)
	return p, ok
}

// generateJTI creates a URL-safe random identifier used as the token id.
func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = hex[int(b[i])%len(hex)]
	}
	return string(out), nil
}
