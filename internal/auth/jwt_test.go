package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACVerifierRoundTrip(t *testing.T) {
	v := NewHMACVerifier("secret")
	token, err := v.Issue("u1", "ana@usp.edu.br", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, Identity{Subject: "u1", Email: "ana@usp.edu.br"}, id)
}

func TestHMACVerifierRejects(t *testing.T) {
	v := NewHMACVerifier("secret")
	ctx := context.Background()

	expired, err := v.Issue("u1", "", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(ctx, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewHMACVerifier("other").Issue("u1", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = v.Verify(ctx, noSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
