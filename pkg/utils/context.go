package utils

import "context"

type contextKey string

const (
	TokenKey         contextKey = "token"
	CorrelationIDKey contextKey = "correlation_id"
)

// SetTokenContext attaches a bearer token override to the context. Gateways
// prefer it over the process-wide session credential when present.
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetCorrelationIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

func GetCorrelationIDFromContext(ctx context.Context) (string, bool) {
	idVal := ctx.Value(CorrelationIDKey)
	if idVal == nil {
		return "", false
	}

	id, ok := idVal.(string)
	return id, ok
}
