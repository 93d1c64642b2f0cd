package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/utils"
)

const SessionCookieName = "brightsteps_session"

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionClaims carries the signed-in parent and, once a profile has been
// selected, the active baby profile token.
type SessionClaims struct {
	ParentID uint   `json:"parent_id"`
	BabyUUID string `json:"baby_uuid,omitempty"`
	jwt.RegisteredClaims
}

// SessionService mints and verifies the signed session cookie.
type SessionService interface {
	Issue(parentID uint, babyUUID string) (string, error)
	Parse(token string) (*SessionClaims, error)
	SetCookie(c *gin.Context, token string)
	ClearCookie(c *gin.Context)
}

type sessionService struct {
	log    *logger.Logger
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessionService(log *logger.Logger) SessionService {
	serviceLog := log.With("service", "SessionService")
	secret := utils.GetEnv("SESSION_SECRET_KEY", "", serviceLog)
	if secret == "" {
		// Sessions do not survive a restart without a configured key.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			serviceLog.Fatal("failed to generate session key", "error", err)
		}
		secret = hex.EncodeToString(buf)
		serviceLog.Warn("SESSION_SECRET_KEY not set, using ephemeral key")
	}
	ttlHours := utils.GetEnvAsInt("SESSION_TTL_HOURS", 24*7, serviceLog)
	secure := utils.GetEnv("SESSION_COOKIE_SECURE", "false", serviceLog) == "true"
	return &sessionService{
		log:    serviceLog,
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
		secure: secure,
	}
}

func (ss *sessionService) Issue(parentID uint, babyUUID string) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		ParentID: parentID,
		BabyUUID: babyUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ss.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ss.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (ss *sessionService) Parse(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ss.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.ParentID == 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

func (ss *sessionService) SetCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, int(ss.ttl.Seconds()), "/", "", ss.secure, true)
}

func (ss *sessionService) ClearCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", ss.secure, true)
}
