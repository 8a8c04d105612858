package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := auth.NewVerifier("test-secret", "portal")
	id := uuid.New()

	token, err := v.Sign(id, time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifier_Rejects(t *testing.T) {
	type testCase struct {
		name  string
		token func(t *testing.T) string
	}

	v := auth.NewVerifier("test-secret", "portal")

	tests := []testCase{
		{
			name: "ExpiredToken",
			token: func(t *testing.T) string {
				token, err := v.Sign(uuid.New(), -time.Minute)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "WrongSecret",
			token: func(t *testing.T) string {
				other := auth.NewVerifier("other-secret", "portal")
				token, err := other.Sign(uuid.New(), time.Hour)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "WrongIssuer",
			token: func(t *testing.T) string {
				other := auth.NewVerifier("test-secret", "someone-else")
				token, err := other.Sign(uuid.New(), time.Hour)
				require.NoError(t, err)
				return token
			},
		},
		{
			name:  "Garbage",
			token: func(*testing.T) string { return "not-a-jwt" },
		},
		{
			name:  "Empty",
			token: func(*testing.T) string { return "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token(t))
			assert.ErrorIs(t, err, auth.ErrUnauthorized)
		})
	}
}
