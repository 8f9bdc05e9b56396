// Package session keeps the signed-in user in a signed cookie and carries
// one-time flash messages across redirects.
package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"

	"microboard/internal/config"
	"microboard/internal/models"
)

const (
	CookieName = "user_id"

	flashSessionName = "flash"
	formKeyPrefix    = "form."

	tokenKeyInfo = "microboard user_id token"
	flashKeyInfo = "microboard flash cookie"

	FlashError  = "error"
	FlashNotice = "notice"
)

var (
	ErrNoSession      = errors.New("no session cookie")
	ErrInvalidSession = errors.New("invalid session cookie")
)

type Flash struct {
	Kind    string
	Message string
}

type Manager struct {
	tokenKey []byte
	duration time.Duration
	secure   bool
	flashes  sessions.Store
	now      func() time.Time
}

// NewManager derives one key for the user_id token and another for the flash
// cookie from cfg.SecretKey.
func NewManager(cfg config.Session) *Manager {
	secret := []byte(cfg.SecretKey)

	store := sessions.NewCookieStore(deriveKey(secret, flashKeyInfo))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		tokenKey: deriveKey(secret, tokenKeyInfo),
		duration: cfg.Duration,
		secure:   cfg.Secure,
		flashes:  store,
		now:      time.Now,
	}
}

func deriveKey(secret []byte, info string) []byte {
	key := make([]byte, 32)
	// hkdf only runs dry after 255 hash blocks
	_, _ = io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key)
	return key
}

// SignIn sets the user_id cookie. Its value is an HS256 token whose subject
// is the user id, so the client cannot forge or alter it.
func (m *Manager) SignIn(w http.ResponseWriter, userID int64) error {
	now := m.now()
	expires := now.Add(m.duration)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.tokenKey)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(m.duration.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// SignOut clears the user_id cookie. Safe to call without a session.
func (m *Manager) SignOut(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID returns ErrNoSession when the request carries no cookie and
// ErrInvalidSession when the cookie fails verification or has expired.
func (m *Manager) UserID(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return 0, ErrNoSession
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims,
		func(token *jwt.Token) (interface{}, error) {
			return m.tokenKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidSession
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidSession
	}

	return userID, nil
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) error {
	return m.AddFlashWithForm(w, r, kind, message, nil)
}

// AddFlashWithForm also keeps the submitted form values so the next page can
// refill its inputs. Passwords must not be passed in.
func (m *Manager) AddFlashWithForm(w http.ResponseWriter, r *http.Request, kind, message string, form map[string]string) error {
	// a tampered flash cookie still yields a fresh session
	sess, err := m.flashes.Get(r, flashSessionName)
	if sess == nil {
		return err
	}

	sess.AddFlash(message, kind)
	for field, value := range form {
		sess.AddFlash(value, formKeyPrefix+field)
	}
	return sess.Save(r, w)
}

// Pending holds what a previous request left for this one.
type Pending struct {
	Flashes []Flash
	Form    map[string]string
}

// Pop removes and returns pending flash messages and form values. Errors
// come before notices.
func (m *Manager) Pop(w http.ResponseWriter, r *http.Request) (Pending, error) {
	var out Pending

	sess, err := m.flashes.Get(r, flashSessionName)
	if sess == nil {
		return out, err
	}

	for _, kind := range []string{FlashError, FlashNotice} {
		for _, value := range sess.Flashes(kind) {
			if message, ok := value.(string); ok {
				out.Flashes = append(out.Flashes, Flash{Kind: kind, Message: message})
			}
		}
	}

	for key := range sess.Values {
		name, ok := key.(string)
		if !ok || !strings.HasPrefix(name, formKeyPrefix) {
			continue
		}
		for _, value := range sess.Flashes(name) {
			if s, ok := value.(string); ok {
				if out.Form == nil {
					out.Form = make(map[string]string)
				}
				out.Form[strings.TrimPrefix(name, formKeyPrefix)] = s
			}
		}
	}

	if out.Flashes == nil && out.Form == nil {
		return out, nil
	}

	return out, sess.Save(r, w)
}

type contextKey string

const userContextKey = contextKey("currentUser")

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the signed-in user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
