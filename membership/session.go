package membership

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lanternclub/membergate/pkg/cookie"
	"github.com/lanternclub/membergate/pkg/token"
)

// SessionConfig holds member session settings.
type SessionConfig struct {
	CookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"member_session"`
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	SigningKey    string        `env:"SESSION_SIGNING_KEY,required"`
	SecureCookies bool          `env:"SESSION_SECURE_COOKIES" envDefault:"true"`
}

// Claims is the session payload carried in the signed cookie. It holds only
// what page rendering needs; everything else stays in the store.
type Claims struct {
	FirstName string `json:"first_name,omitempty"`
	Cohort    string `json:"cohort,omitempty"`
	Status    Status `json:"status"`
	token.StandardClaims
}

// IsActive reports whether the session belongs to an active member.
func (c Claims) IsActive() bool {
	return c.Status == StatusActive
}

// SessionManager issues and reads stateless member sessions. Sessions are
// signed JWT cookies; nothing is stored server side, so a session stays
// valid until it expires or the signing key rotates.
type SessionManager struct {
	tokens  *token.Service
	cookies *cookie.Manager
	cfg     SessionConfig
}

// NewSessionManager creates a session manager from config.
func NewSessionManager(cfg SessionConfig) (*SessionManager, error) {
	tokens, err := token.NewFromString(cfg.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "member_session"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 720 * time.Hour
	}

	cookies := cookie.New(
		cookie.WithSecure(cfg.SecureCookies),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)
	return &SessionManager{tokens: tokens, cookies: cookies, cfg: cfg}, nil
}

// Issue signs a session for the given claims and sets the cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, claims Claims) error {
	now := time.Now()
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(m.cfg.TTL).Unix()

	signed, err := m.tokens.Generate(claims)
	if err != nil {
		return fmt.Errorf("failed to issue session: %w", err)
	}

	m.cookies.Set(w, m.cfg.CookieName, signed,
		cookie.WithMaxAge(int(m.cfg.TTL.Seconds())))
	return nil
}

// Read extracts and verifies the session from a request. Missing, expired,
// or tampered cookies all yield an error; callers treat any failure as
// "no session".
func (m *SessionManager) Read(r *http.Request) (Claims, error) {
	raw, err := m.cookies.Get(r, m.cfg.CookieName)
	if err != nil {
		return Claims{}, err
	}

	var claims Claims
	if err := m.tokens.Parse(raw, &claims); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	m.cookies.Delete(w, m.cfg.CookieName)
}
