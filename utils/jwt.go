package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = ""

// ErrNoJWTSecret ключ подписи не задан ни в конфигурации, ни в JWT_SECRET
var ErrNoJWTSecret = errors.New("JWT secret is not configured")

// Claims представляет структуру JWT токена оператора
type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// SetJWTSecret задает ключ подписи из конфигурации
func SetJWTSecret(secret string) {
	jwtSecret = secret
}

func secretKey() ([]byte, error) {
	if jwtSecret != "" {
		return []byte(jwtSecret), nil
	}
	// Затем переменная окружения; ключа по умолчанию нет
	if env := os.Getenv("JWT_SECRET"); env != "" {
		return []byte(env), nil
	}
	return nil, ErrNoJWTSecret
}

// GenerateJWT создает JWT токен для оператора
func GenerateJWT(operator string) (string, error) {
	claims := &Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Токен действителен 24 часа
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	key, err := secretKey()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateJWT проверяет и парсит JWT токен
func ValidateJWT(tokenString string) (*Claims, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем метод подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return key, nil
	}, jwt.WithLeeway(5*time.Minute))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// HashOperatorKey bcrypt-хэш ключа оператора для OPERATOR_KEY_HASH
func HashOperatorKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckOperatorKey сравнивает ключ с хэшем
func CheckOperatorKey(hash, key string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

// AuthMiddleware middleware для проверки JWT токена
func AuthMiddleware(c *fiber.Ctx) error {
	// Получаем токен из заголовка Authorization
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{
			"error":   true,
			"message": "Authorization header required",
		})
	}

	// Проверяем формат Bearer token
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid authorization header format",
		})
	}

	claims, err := ValidateJWT(tokenParts[1])
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid token",
		})
	}

	// Сохраняем оператора в контексте
	c.Locals("operator", claims.Operator)

	return c.Next()
}

// OptionalAuth включает AuthMiddleware только при enabled
func OptionalAuth(enabled bool) fiber.Handler {
	if enabled {
		return AuthMiddleware
	}
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
