// Package tokens проверка JWT токенов администраторов.
//
// Токены выпускает внешний провайдер идентификации. Сервис только проверяет подпись:
// общим HS256 секретом или ключами из JWKS.
package tokens

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidToken   = errors.New("invalid token")
	ErrSubjectDenied  = errors.New("subject is not allowed")
	ErrMissingSubject = errors.New("token has no subject")
)

// AdminClaims данные JWT токена администратора.
type AdminClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// Identity проверенный администратор.
type Identity struct {
	ModeratorID string
	Name        string
}

// Verifier проверяет токены администраторов.
type Verifier struct {
	keyFunc  jwt.Keyfunc
	methods  []string
	subjects []string
}

// NewHMACVerifier создает Verifier для токенов, подписанных общим секретом.
//
// Параметры:
//   - secret: общий секрет
//   - subjects: допустимые sub. Пустой список разрешает любой sub
func NewHMACVerifier(secret []byte, subjects []string) *Verifier {
	return &Verifier{
		keyFunc: func(_ *jwt.Token) (any, error) {
			return secret, nil
		},
		methods:  []string{jwt.SigningMethodHS256.Alg()},
		subjects: subjects,
	}
}

// NewKeyfuncVerifier создает Verifier поверх готового keyfunc (RS/ES ключи).
func NewKeyfuncVerifier(kf keyfunc.Keyfunc, subjects []string) *Verifier {
	return &Verifier{
		keyFunc: kf.Keyfunc,
		methods: []string{
			jwt.SigningMethodRS256.Alg(), jwt.SigningMethodRS384.Alg(), jwt.SigningMethodRS512.Alg(),
			jwt.SigningMethodES256.Alg(), jwt.SigningMethodES384.Alg(), jwt.SigningMethodES512.Alg(),
		},
		subjects: subjects,
	}
}

// NewJWKSVerifier создает Verifier, который берет ключи из JWKS провайдера
// и периодически их обновляет. Старт не блокируется недоступностью провайдера.
//
// Параметры:
//   - ctx: контекст жизни фонового обновления ключей
//   - jwksURL: адрес JWKS
//   - subjects: допустимые sub
//   - logger: логгер
//
// Возвращает:
//   - *Verifier: экземпляр
//   - error: ошибка инициализации хранилища ключей
func NewJWKSVerifier(ctx context.Context, jwksURL string, subjects []string, logger *zap.Logger) (*Verifier, error) {
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: 10 * time.Second},
		Ctx:                       ctx,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           time.Hour,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("jwks refresh failed", zap.String("url", jwksURL), zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating jwks storage: %w", err)
	}

	kf, err := keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("creating keyfunc: %w", err)
	}
	return NewKeyfuncVerifier(kf, subjects), nil
}

// Verify проверяет подпись, срок действия и sub токена.
//
// Возвращает:
//   - *Identity: администратор
//   - error: ErrTokenExpired, ErrSubjectDenied, либо ErrInvalidToken
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	claims := new(AdminClaims)
	_, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc, jwt.WithValidMethods(v.methods))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	if len(v.subjects) > 0 && !slices.Contains(v.subjects, claims.Subject) {
		return nil, ErrSubjectDenied
	}

	name := claims.Name
	if name == "" {
		name = claims.Subject
	}
	return &Identity{ModeratorID: claims.Subject, Name: name}, nil
}

// GenerateAdminJWT создает HS256 токен администратора. Используется для локальной
// разработки и в тестах, в проде токены выпускает провайдер.
//
// Параметры:
//   - subject: идентификатор модератора
//   - name: отображаемое имя
//   - expire: срок действия токена
//   - key: ключ для подписи токена
func GenerateAdminJWT(subject, name string, expire time.Duration, key []byte) (string, error) {
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
		Name: name,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating admin jwt token: %w", err)
	}
	return token, nil
}
