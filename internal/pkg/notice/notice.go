package notice

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const CookieName = "hrms_notice"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a transient, dismissible message shown once on the next page.
type Notice struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func Success(message string) Notice {
	return Notice{ID: uuid.NewString(), Message: message, Severity: SeveritySuccess}
}

func Error(message string) Notice {
	return Notice{ID: uuid.NewString(), Message: message, Severity: SeverityError}
}

func (n Notice) IsError() bool {
	return n.Severity == SeverityError
}

var ErrInvalidNotice = errors.New("invalid notice token")

type Service interface {
	// Set stores n in a signed cookie for the next request.
	Set(w http.ResponseWriter, n Notice) error
	// Consume reads and clears the pending notice, if any.
	Consume(w http.ResponseWriter, r *http.Request) (Notice, bool)
	Encode(n Notice) (string, error)
	Decode(token string) (Notice, error)
}

type NoticeService struct {
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
	secure    bool
}

func NewNoticeService(secretKey string, ttl time.Duration, secure bool) Service {
	return &NoticeService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(5*time.Second)),
		ttl:       ttl,
		secure:    secure,
	}
}

func (s *NoticeService) Encode(n Notice) (string, error) {
	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"jti":      n.ID,
		"message":  n.Message,
		"severity": string(n.Severity),
		"type":     "notice",
		"exp":      time.Now().Add(s.ttl).Unix(),
	})
	return tokenString, err
}

func (s *NoticeService) Decode(tokenString string) (Notice, error) {
	token, err := jwtauth.VerifyToken(s.tokenAuth, tokenString)
	if err != nil {
		return Notice{}, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "notice" {
		return Notice{}, ErrInvalidNotice
	}

	message, _ := stringClaim(token, "message")
	severity, _ := stringClaim(token, "severity")
	n := Notice{
		ID:       token.JwtID(),
		Message:  message,
		Severity: Severity(severity),
	}
	if n.Message == "" || (n.Severity != SeveritySuccess && n.Severity != SeverityError) {
		return Notice{}, ErrInvalidNotice
	}
	return n, nil
}

func stringClaim(token jwt.Token, name string) (string, bool) {
	v, ok := token.Get(name)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

func (s *NoticeService) Set(w http.ResponseWriter, n Notice) error {
	token, err := s.Encode(n)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *NoticeService) Consume(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	s.clear(w)

	n, err := s.Decode(cookie.Value)
	if err != nil {
		return Notice{}, false
	}
	return n, true
}

func (s *NoticeService) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey struct{}

func NewContext(ctx context.Context, n Notice) context.Context {
	return context.WithValue(ctx, contextKey{}, n)
}

func FromContext(ctx context.Context) (Notice, bool) {
	n, ok := ctx.Value(contextKey{}).(Notice)
	return n, ok
}
