package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classdesk-api/internal/dto"
)

func authFixture() AuthService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAuthService(newFakeUserRepo(), validate, "test-secret", time.Hour, testLogger())
}

func TestAuthSignupIssuesToken(t *testing.T) {
	svc := authFixture()

	result, err := svc.Signup(context.Background(), dto.SignupRequest{
		Username: "teacher",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	token, err := jwt.Parse(result.Token, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.EqualValues(t, 1, claims["sub"])
}

func TestAuthSignupDuplicateUsername(t *testing.T) {
	svc := authFixture()

	_, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "teacher", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), dto.SignupRequest{Username: "teacher", Password: "different-pass"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := authFixture()

	_, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "teacher", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "teacher", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthLoginUnknownUser(t *testing.T) {
	svc := authFixture()

	// Unknown user and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthLoginRoundTrip(t *testing.T) {
	svc := authFixture()

	_, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "teacher", Password: "correct-horse"})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), dto.LoginRequest{Username: "teacher", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}

func TestAuthSignupValidation(t *testing.T) {
	svc := authFixture()

	_, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "ab", Password: "short"})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}
