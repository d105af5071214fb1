// Package grpc serves webpages.v1.WebpageService.
package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/atinyakov/go-webpages/internal/app/service"
	"github.com/atinyakov/go-webpages/internal/intercepters"
	"github.com/atinyakov/go-webpages/internal/storage"
	pb "github.com/atinyakov/go-webpages/proto"
)

// Server wraps the gRPC server and its listener port.
type Server struct {
	grpcServer *grpc.Server
	port       string
	logger     *zap.Logger
}

// New builds a server whose Stats method is limited to trustedSubnet.
func New(logger *zap.Logger, svc service.WebpageServiceIface, auth service.AuthIface, trustedSubnet string, port string) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(intercepters.InterceptorLogger(logger)),
			intercepters.SubnetIPInterceptor,
			intercepters.WithTrustedSubnet(trustedSubnet, pb.MethodStats),
			intercepters.WithJWT(auth),
		),
	)

	pb.RegisterWebpageServiceServer(s, &WebpagesServer{Service: svc, Logger: logger})

	return &Server{
		grpcServer: s,
		port:       port,
		logger:     logger,
	}
}

// Start listens on the configured port and serves until stopped.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		s.logger.Error("gRPC server failed to listen", zap.Error(err))
		return err
	}
	return s.Serve(lis)
}

// Serve serves on lis.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	err := s.grpcServer.Serve(lis)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// WebpagesServer implements pb.WebpageServiceServer over the service.
type WebpagesServer struct {
	pb.UnimplementedWebpageServiceServer
	Service service.WebpageServiceIface
	Logger  *zap.Logger
}

func (s *WebpagesServer) List(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := s.Service.List(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return pb.ToList(list), nil
}

func (s *WebpagesServer) Get(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	w, err := s.Service.Get(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return pb.ToStruct(w), nil
}

func (s *WebpagesServer) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := pb.FromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	w, err := s.Service.Create(ctx, in)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return pb.ToStruct(w), nil
}

func (s *WebpagesServer) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := pb.FromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if !in.HasID() {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	w, err := s.Service.Update(ctx, in.ID, in)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return pb.ToStruct(w), nil
}

func (s *WebpagesServer) Delete(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if err := s.Service.Delete(ctx, req.GetValue()); err != nil {
		return nil, s.toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *WebpagesServer) Stats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	stats, err := s.Service.Stats(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"webpages": structpb.NewNumberValue(float64(stats.Webpages)),
	}}, nil
}

func (s *WebpagesServer) toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, "webpage not found")
	case errors.Is(err, storage.ErrConflict):
		return status.Error(codes.AlreadyExists, "webpage already exists")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	if s.Logger != nil {
		s.Logger.Error("grpc call failed", zap.Error(err))
	}
	return status.Error(codes.Internal, err.Error())
}
