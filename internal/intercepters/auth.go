package intercepters

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/atinyakov/go-webpages/internal/app/service"
	"github.com/atinyakov/go-webpages/internal/middleware"
)

// NewTokenTrailer is the trailer key carrying a freshly issued token.
const NewTokenTrailer = "new-token"

// WithJWT identifies the caller from the authorization metadata. Callers
// without a token get one issued in the new-token trailer.
func WithJWT(auth service.AuthIface) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		var userID string

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		authHeader := md.Get("authorization")

		if len(authHeader) == 0 {
			token, generatedID, err := auth.BuildJWTString()
			if err != nil {
				return nil, status.Errorf(codes.Internal, "failed to build JWT: %v", err)
			}
			userID = generatedID
			_ = grpc.SetTrailer(ctx, metadata.Pairs(NewTokenTrailer, token))
		} else {
			claims, err := auth.ParseRawJWT(strings.TrimPrefix(authHeader[0], "Bearer "))
			if err != nil {
				return nil, status.Errorf(codes.Unauthenticated, "invalid JWT: %v", err)
			}
			userID = claims.UserID
		}

		return handler(context.WithValue(ctx, middleware.UserIDKey, userID), req)
	}
}
