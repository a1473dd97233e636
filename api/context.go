package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type keyType string

const (
	userIDKey keyType = "userID"
)

// ctxWithUserID adds the authenticated caller's user ID to the context
func ctxWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the caller's user ID from the context. Used by
// required-auth operations, which should never see a missing value because
// the auth middleware runs first.
func ctxGetUserID(ctx context.Context) (uuid.UUID, error) {
	ctxValue := ctx.Value(userIDKey)
	if ctxValue == nil {
		return uuid.Nil, errors.New("no user ID in context")
	}
	userID, ok := ctxValue.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID in context is not a uuid")
	}
	return userID, nil
}

// ctxGetUserIDOrNil is the anonymous-tolerant variant for read-only
// operations that personalize output: nil means no authenticated caller.
func ctxGetUserIDOrNil(ctx context.Context) *uuid.UUID {
	userID, err := ctxGetUserID(ctx)
	if err != nil {
		return nil
	}
	return &userID
}
