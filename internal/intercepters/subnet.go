package intercepters

import (
	"context"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

// RealIPKey holds the x-real-ip metadata value.
const RealIPKey contextKey = "real-ip"

// SubnetIPInterceptor copies x-real-ip metadata into the context.
func SubnetIPInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ips := md.Get("x-real-ip"); len(ips) > 0 {
			ctx = context.WithValue(ctx, RealIPKey, ips[0])
		}
	}
	return handler(ctx, req)
}

// WithTrustedSubnet rejects calls to the listed methods unless the caller's
// real ip, as stored by SubnetIPInterceptor, lies in subnet.
func WithTrustedSubnet(subnet string, methods ...string) grpc.UnaryServerInterceptor {
	_, trusted, err := net.ParseCIDR(strings.TrimSpace(subnet))
	if err != nil {
		trusted = nil
	}
	guarded := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		guarded[m] = struct{}{}
	}

	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if _, ok := guarded[info.FullMethod]; !ok {
			return handler(ctx, req)
		}
		raw, _ := ctx.Value(RealIPKey).(string)
		ip := net.ParseIP(strings.TrimSpace(raw))
		if trusted == nil || ip == nil || !trusted.Contains(ip) {
			return nil, status.Error(codes.PermissionDenied, "caller is not in the trusted subnet")
		}
		return handler(ctx, req)
	}
}
