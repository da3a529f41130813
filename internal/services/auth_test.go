package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

func TestSetContextFromTokenAttachesUser(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "s3cret")
	userID := uuid.New()
	tok, err := SignAccessToken("s3cret", userID, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	ctx, err := svc.SetContextFromToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if got := ctxutil.UserID(ctx); got != userID {
		t.Fatalf("user id: want=%s got=%s", userID, got)
	}
}

func TestSetContextFromTokenRejects(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "s3cret")
	userID := uuid.New()

	expired, _ := SignAccessToken("s3cret", userID, -time.Minute)
	wrongKey, _ := SignAccessToken("other", userID, time.Minute)
	badSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}).SignedString([]byte("s3cret"))
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject: userID.String(),
	}}).SignedString([]byte("s3cret"))
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}).SignedString([]byte("s3cret"))

	cases := map[string]string{
		"expired":     expired,
		"wrong key":   wrongKey,
		"bad subject": badSubject,
		"no expiry":   noExpiry,
		"wrong alg":   hs512,
		"garbage":     "abc.def.ghi",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			ctx, err := svc.SetContextFromToken(context.Background(), tok)
			if err == nil {
				t.Fatalf("expected rejection")
			}
			if ctxutil.GetRequestData(ctx) != nil {
				t.Fatalf("rejected token must not attach request data")
			}
		})
	}

	if _, err := svc.SetContextFromToken(context.Background(), "  "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("blank token: want ErrMissingToken, got %v", err)
	}
}
