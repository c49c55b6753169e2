package grpc

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simre/results-server/internal/auth"
)

const authorizationHeader = "authorization"

// AuthInterceptor requires a valid bearer token on every simre.v1.Dashboard call and
// stores the session in the request context. Other services (health) stay public.
func AuthInterceptor(verifier TokenVerifier, logger *zap.Logger) grpc.UnaryServerInterceptor {
	if verifier == nil {
		panic("nil TokenVerifier provided to AuthInterceptor")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := "/" + DashboardServiceName + "/"

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !strings.HasPrefix(info.FullMethod, prefix) {
			return handler(ctx, req)
		}

		token := bearerToken(ctx)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}

		session, err := verifier.Verify(token)
		if err != nil {
			logger.Debug("rejected token", zap.String("method", info.FullMethod), zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, "invalid session token")
		}

		return handler(auth.NewContext(ctx, session), req)
	}
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get(authorizationHeader) {
		scheme, token, found := strings.Cut(strings.TrimSpace(v), " ")
		if found && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
	}
	return ""
}
