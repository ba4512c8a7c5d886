package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// TokenBytes длина случайной части credential в байтах
const TokenBytes = 32

// Generator выпускает одноразовые credential; источник случайности подменяется в тестах
type Generator struct {
	random io.Reader
}

// NewGenerator создает генератор на crypto/rand
func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

// NewGeneratorWithSource создает генератор с произвольным источником случайности
func NewGeneratorWithSource(r io.Reader) *Generator {
	return &Generator{random: r}
}

// Generate возвращает plaintext (base64url) и его хэш для хранения
func (g *Generator) Generate() (plaintext string, hash string, err error) {
	buf := make([]byte, TokenBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", "", fmt.Errorf("credential: read random: %w", err)
	}

	plaintext = base64.RawURLEncoding.EncodeToString(buf)
	return plaintext, Hash(plaintext), nil
}

// Hash односторонний хэш credential (hex SHA-256).
// Детерминированный, чтобы искать бронирование по хэшу; энтропия токена делает соль ненужной.
func Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// LooksValid быстрая проверка формата до обращения к базе
func LooksValid(plaintext string) bool {
	decoded, err := base64.RawURLEncoding.DecodeString(plaintext)
	return err == nil && len(decoded) == TokenBytes
}
