package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/atinyakov/go-webpages/internal/intercepters"
	"github.com/atinyakov/go-webpages/internal/models"
	pb "github.com/atinyakov/go-webpages/proto"
)

// GRPC calls webpages.v1.WebpageService. Without a configured token it adopts
// the one the server issues on the first call.
type GRPC struct {
	client *pb.WebpageServiceClient
	conn   *grpc.ClientConn
	logger *zap.Logger

	mu    sync.Mutex
	token string
}

// NewGRPC wraps an existing connection. The caller keeps ownership of cc.
func NewGRPC(cc grpc.ClientConnInterface, opts ...Option) *GRPC {
	o := newOptions(opts)
	return &GRPC{
		client: pb.NewWebpageServiceClient(cc),
		logger: o.logger,
		token:  o.token,
	}
}

// DialGRPC connects to target without TLS. Close releases the connection.
func DialGRPC(target string, opts ...Option) (*GRPC, error) {
	o := newOptions(opts)

	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			logging.UnaryClientInterceptor(intercepters.InterceptorLogger(o.logger)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}

	c := NewGRPC(conn, opts...)
	c.conn = conn
	return c, nil
}

// Close closes a connection opened by DialGRPC.
func (c *GRPC) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *GRPC) List(ctx context.Context) ([]models.Webpage, error) {
	var trailer metadata.MD
	out, err := c.client.List(c.outgoing(ctx), &emptypb.Empty{}, grpc.Trailer(&trailer))
	c.adopt(trailer)
	if err != nil {
		return nil, c.failure(err)
	}
	return pb.FromList(out)
}

func (c *GRPC) Get(ctx context.Context, id int64) (models.Webpage, error) {
	var trailer metadata.MD
	out, err := c.client.Get(c.outgoing(ctx), wrapperspb.Int64(id), grpc.Trailer(&trailer))
	c.adopt(trailer)
	if err != nil {
		return models.Webpage{}, c.failure(err)
	}
	return pb.FromStruct(out)
}

func (c *GRPC) Create(ctx context.Context, w models.Webpage) (models.Webpage, error) {
	w.ID = 0

	var trailer metadata.MD
	out, err := c.client.Create(c.outgoing(ctx), pb.ToStruct(w), grpc.Trailer(&trailer))
	c.adopt(trailer)
	if err != nil {
		return models.Webpage{}, c.failure(err)
	}
	return pb.FromStruct(out)
}

func (c *GRPC) Update(ctx context.Context, id int64, w models.Webpage) (models.Webpage, error) {
	w.ID = id

	var trailer metadata.MD
	out, err := c.client.Update(c.outgoing(ctx), pb.ToStruct(w), grpc.Trailer(&trailer))
	c.adopt(trailer)
	if err != nil {
		return models.Webpage{}, c.failure(err)
	}
	return pb.FromStruct(out)
}

func (c *GRPC) Delete(ctx context.Context, id int64) error {
	var trailer metadata.MD
	_, err := c.client.Delete(c.outgoing(ctx), wrapperspb.Int64(id), grpc.Trailer(&trailer))
	c.adopt(trailer)
	if err != nil {
		return c.failure(err)
	}
	return nil
}

// Token returns the bearer token sent with each call.
func (c *GRPC) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *GRPC) outgoing(ctx context.Context) context.Context {
	if token := c.Token(); token != "" {
		return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	}
	return ctx
}

func (c *GRPC) adopt(trailer metadata.MD) {
	issued := trailer.Get(intercepters.NewTokenTrailer)
	if len(issued) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		c.token = issued[0]
	}
}

func (c *GRPC) failure(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	c.logger.Debug("grpc call failed",
		zap.String("code", st.Code().String()),
		zap.String("message", st.Message()),
	)
	return &Error{
		Status:  int(st.Code()),
		Message: GRPCMessage(st.Code()),
		Err:     grpcSentinel(st.Code()),
	}
}
