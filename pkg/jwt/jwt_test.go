package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medisupply-api/pkg/jwt"
)

const (
	secret = "test-secret-key-for-unit-tests"
	userID = "00000000-0000-0000-0000-000000000001"
	issuer = "medisupply-test"
)

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := jwt.Generate(secret, userID, "commercial", issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "commercial", role)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := jwt.Generate(secret, userID, "admin", issuer, -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := jwt.Generate(secret, userID, "admin", issuer, 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestParse_SinSubject_RetornaError(t *testing.T) {
	tok, err := jwt.Generate(secret, "", "admin", issuer, 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", userID, "admin", issuer, 60)
	assert.Error(t, err)
}
