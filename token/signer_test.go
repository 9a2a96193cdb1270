package token_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-club-server/token"
	"github.com/stretchr/testify/require"
)

func TestHMACSigner(t *testing.T) {
	signer := token.NewHMACSigner(testSecret)
	claims := jwt.MapClaims{"sub": "1"}

	t.Run("signs with HS256", func(t *testing.T) {
		raw, err := signer.Sign(claims)
		require.NoError(t, err)

		parsed, err := jwt.Parse(raw, signer.GetVerificationKey)
		require.NoError(t, err)
		require.Equal(t, "HS256", parsed.Method.Alg())
	})

	t.Run("refuses other HMAC strengths", func(t *testing.T) {
		for _, method := range []jwt.SigningMethod{jwt.SigningMethodHS384, jwt.SigningMethodHS512} {
			raw, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = jwt.Parse(raw, signer.GetVerificationKey)
			require.Error(t, err, method.Alg())
		}
	})
}
