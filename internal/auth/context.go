package auth

import (
	"context"
	"errors"
)

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxOrgID
	ctxName
	ctxRole
)

func WithIdentity(ctx context.Context, userID, orgID, name, role string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxOrgID, orgID)
	ctx = context.WithValue(ctx, ctxName, name)
	ctx = context.WithValue(ctx, ctxRole, role)
	return ctx
}

func UserID(ctx context.Context) (string, error) {
	v := ctx.Value(ctxUserID)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("user_id not in context")
}

func OrgID(ctx context.Context) (string, error) {
	v := ctx.Value(ctxOrgID)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("org_id not in context")
}

func Name(ctx context.Context) (string, error) {
	v := ctx.Value(ctxName)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("name not in context")
}

func Role(ctx context.Context) (string, error) {
	v := ctx.Value(ctxRole)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("role not in context")
}
