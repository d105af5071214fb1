package intercepters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestSubnetIPInterceptor(t *testing.T) {
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		ip, _ := ctx.Value(RealIPKey).(string)
		return ip, nil
	}

	tests := []struct {
		name   string
		ctx    context.Context
		wantIP string
	}{
		{
			name:   "with x-real-ip metadata",
			ctx:    metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-real-ip", "192.168.1.100")),
			wantIP: "192.168.1.100",
		},
		{
			name:   "with empty x-real-ip metadata",
			ctx:    metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-real-ip", "")),
			wantIP: "",
		},
		{
			name:   "without metadata",
			ctx:    context.Background(),
			wantIP: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := SubnetIPInterceptor(tt.ctx, nil, &grpc.UnaryServerInfo{}, handler)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantIP, resp)
		})
	}
}

func TestWithTrustedSubnet(t *testing.T) {
	const stats = "/webpages.v1.WebpageService/Stats"
	interceptor := WithTrustedSubnet("10.1.0.0/16", stats)

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	}
	withIP := func(ip string) context.Context {
		return context.WithValue(context.Background(), RealIPKey, ip)
	}

	resp, err := interceptor(withIP("10.1.2.3"), nil, &grpc.UnaryServerInfo{FullMethod: stats}, handler)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = interceptor(withIP("10.2.0.1"), nil, &grpc.UnaryServerInfo{FullMethod: stats}, handler)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: stats}, handler)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	resp, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/webpages.v1.WebpageService/List"}, handler)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = WithTrustedSubnet("", stats)(withIP("10.1.2.3"), nil, &grpc.UnaryServerInfo{FullMethod: stats}, handler)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}
