package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/borgia-ae/borgia-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	s, err := pkgjwt.Generate(testSecret, 42, "user1", "borgia-test", 120)
	require.NoError(t, err)
	require.NotEmpty(t, s.Token)
	require.NotEmpty(t, s.ID)

	claims, err := pkgjwt.Parse(testSecret, s.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user1", claims.Username)
	assert.Equal(t, s.ID, claims.ID)
	assert.Greater(t, claims.Remaining(time.Now()), 119*time.Minute)
}

func TestParse_TokenExpirado(t *testing.T) {
	s, err := pkgjwt.Generate(testSecret, 42, "user1", "borgia-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, s.Token)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	s, err := pkgjwt.Generate(testSecret, 42, "user1", "borgia-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", s.Token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "user1", "borgia-test", 60)
	assert.Error(t, err)
}
