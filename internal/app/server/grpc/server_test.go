package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	grpcserver "github.com/atinyakov/go-webpages/internal/app/server/grpc"
	"github.com/atinyakov/go-webpages/internal/app/service"
	"github.com/atinyakov/go-webpages/internal/mocks"
	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/storage"
	pb "github.com/atinyakov/go-webpages/proto"
)

var sample = models.Webpage{ID: 1, URL: "https://go.dev", Title: "Go", CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

func TestWebpagesServerDirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWebpageServiceIface(ctrl)
	srv := &grpcserver.WebpagesServer{Service: svc, Logger: zaptest.NewLogger(t)}
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), models.Webpage{URL: "https://go.dev", Title: "Go"}).Return(sample, nil)
		out, err := srv.Create(ctx, pb.ToStruct(models.Webpage{URL: "https://go.dev", Title: "Go"}))
		require.NoError(t, err)
		got, err := pb.FromStruct(out)
		require.NoError(t, err)
		assert.Equal(t, sample, got)
	})

	t.Run("create rejects bad payload", func(t *testing.T) {
		bad, _ := structpb.NewStruct(map[string]any{"url": 7})
		_, err := srv.Create(ctx, bad)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("update needs id", func(t *testing.T) {
		_, err := srv.Update(ctx, pb.ToStruct(models.Webpage{Title: "x"}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			err  error
			code codes.Code
		}{
			{storage.ErrNotFound, codes.NotFound},
			{storage.ErrConflict, codes.AlreadyExists},
			{errors.Join(service.ErrValidation, errors.New("bad url")), codes.InvalidArgument},
			{context.DeadlineExceeded, codes.DeadlineExceeded},
			{errors.New("disk on fire"), codes.Internal},
		}
		for _, c := range cases {
			svc.EXPECT().Get(gomock.Any(), int64(5)).Return(models.Webpage{}, c.err)
			_, err := srv.Get(ctx, wrapperspb.Int64(5))
			assert.Equal(t, c.code, status.Code(err), c.err.Error())
		}
	})
}

type harness struct {
	client *pb.WebpageServiceClient
	svc    *mocks.MockWebpageServiceIface
	auth   *mocks.MockAuthIface
}

func startServer(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWebpageServiceIface(ctrl)
	auth := mocks.NewMockAuthIface(ctrl)

	lis := bufconn.Listen(1 << 20)
	srv := grpcserver.New(zaptest.NewLogger(t), svc, auth, "10.0.0.0/8", "0")
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &harness{client: pb.NewWebpageServiceClient(conn), svc: svc, auth: auth}
}

func TestServerOverBufconn(t *testing.T) {
	h := startServer(t)
	authed := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer good")

	h.auth.EXPECT().ParseRawJWT("good").Return(&service.Claims{UserID: "u1"}, nil).AnyTimes()

	t.Run("list", func(t *testing.T) {
		h.svc.EXPECT().List(gomock.Any()).Return([]models.Webpage{sample}, nil)
		out, err := h.client.List(authed, &emptypb.Empty{})
		require.NoError(t, err)
		list, err := pb.FromList(out)
		require.NoError(t, err)
		assert.Equal(t, []models.Webpage{sample}, list)
	})

	t.Run("update", func(t *testing.T) {
		patch := models.Webpage{ID: 1, Title: "Gopher"}
		updated := sample
		updated.Title = "Gopher"
		h.svc.EXPECT().Update(gomock.Any(), int64(1), patch).Return(updated, nil)

		out, err := h.client.Update(authed, pb.ToStruct(patch))
		require.NoError(t, err)
		assert.Equal(t, "Gopher", out.GetFields()["title"].GetStringValue())
	})

	t.Run("delete not found", func(t *testing.T) {
		h.svc.EXPECT().Delete(gomock.Any(), int64(9)).Return(storage.ErrNotFound)
		_, err := h.client.Delete(authed, wrapperspb.Int64(9))
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("anonymous caller gets a token", func(t *testing.T) {
		h.auth.EXPECT().BuildJWTString().Return("fresh", "u2", nil)
		h.svc.EXPECT().Get(gomock.Any(), int64(1)).Return(sample, nil)

		var trailer metadata.MD
		_, err := h.client.Get(context.Background(), wrapperspb.Int64(1), grpc.Trailer(&trailer))
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh"}, trailer.Get("new-token"))
	})

	t.Run("invalid token", func(t *testing.T) {
		h.auth.EXPECT().ParseRawJWT("bad").Return(nil, errors.New("expired"))
		ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer bad")
		_, err := h.client.List(ctx, &emptypb.Empty{})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("stats from trusted subnet", func(t *testing.T) {
		h.svc.EXPECT().Stats(gomock.Any()).Return(models.Stats{Webpages: 3}, nil)
		ctx := metadata.AppendToOutgoingContext(authed, "x-real-ip", "10.1.2.3")
		out, err := h.client.Stats(ctx, &emptypb.Empty{})
		require.NoError(t, err)
		assert.Equal(t, float64(3), out.GetFields()["webpages"].GetNumberValue())
	})

	t.Run("stats from elsewhere", func(t *testing.T) {
		ctx := metadata.AppendToOutgoingContext(authed, "x-real-ip", "192.168.0.1")
		_, err := h.client.Stats(ctx, &emptypb.Empty{})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})
}
