// Package proto describes the webpages.v1.WebpageService gRPC service. Its
// messages are protobuf well-known types: a webpage travels as a
// google.protobuf.Struct, ids as Int64Value and lists as ListValue.
package proto

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/atinyakov/go-webpages/internal/models"
)

const ServiceName = "webpages.v1.WebpageService"

// Full method names.
const (
	MethodList   = "/" + ServiceName + "/List"
	MethodGet    = "/" + ServiceName + "/Get"
	MethodCreate = "/" + ServiceName + "/Create"
	MethodUpdate = "/" + ServiceName + "/Update"
	MethodDelete = "/" + ServiceName + "/Delete"
	MethodStats  = "/" + ServiceName + "/Stats"
)

// WebpageServiceServer is implemented by the gRPC server.
type WebpageServiceServer interface {
	List(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	Get(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Update reads the id from the "id" field of the struct.
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Delete(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	Stats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedWebpageServiceServer answers Unimplemented to every call.
type UnimplementedWebpageServiceServer struct{}

func (UnimplementedWebpageServiceServer) List(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}
func (UnimplementedWebpageServiceServer) Get(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedWebpageServiceServer) Create(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Create not implemented")
}
func (UnimplementedWebpageServiceServer) Update(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Update not implemented")
}
func (UnimplementedWebpageServiceServer) Delete(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedWebpageServiceServer) Stats(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Stats not implemented")
}

func RegisterWebpageServiceServer(s grpc.ServiceRegistrar, srv WebpageServiceServer) {
	s.RegisterService(&WebpageServiceDesc, srv)
}

// unary builds a method handler decoding into a fresh Req.
func unary[Req any, Resp any](method string, call func(WebpageServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(WebpageServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(WebpageServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var WebpageServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WebpageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("List", WebpageServiceServer.List),
		unary("Get", WebpageServiceServer.Get),
		unary("Create", WebpageServiceServer.Create),
		unary("Update", WebpageServiceServer.Update),
		unary("Delete", WebpageServiceServer.Delete),
		unary("Stats", WebpageServiceServer.Stats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/webpages.proto",
}

// WebpageServiceClient calls webpages.v1.WebpageService.
type WebpageServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWebpageServiceClient(cc grpc.ClientConnInterface) *WebpageServiceClient {
	return &WebpageServiceClient{cc: cc}
}

func (c *WebpageServiceClient) List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, MethodList, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WebpageServiceClient) Get(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodGet, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WebpageServiceClient) Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodCreate, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WebpageServiceClient) Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodUpdate, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WebpageServiceClient) Delete(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, MethodDelete, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WebpageServiceClient) Stats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodStats, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// MaxExactID is the largest id a Struct number holds exactly. Ids beyond
// ±MaxExactID are sent as decimal strings.
const MaxExactID = 1<<53 - 1

// ToStruct encodes w. Unset fields are left out.
func ToStruct(w models.Webpage) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"url": structpb.NewStringValue(w.URL),
	}
	if w.ID != 0 {
		fields["id"] = idValue(w.ID)
	}
	if w.Title != "" {
		fields["title"] = structpb.NewStringValue(w.Title)
	}
	if w.Description != "" {
		fields["description"] = structpb.NewStringValue(w.Description)
	}
	if !w.CreatedAt.IsZero() {
		fields["createdAt"] = structpb.NewStringValue(w.CreatedAt.UTC().Format(time.RFC3339Nano))
	}
	if w.ImageURL != "" {
		fields["imageUrl"] = structpb.NewStringValue(w.ImageURL)
	}
	return &structpb.Struct{Fields: fields}
}

// FromStruct decodes a webpage. Missing fields stay zero.
func FromStruct(s *structpb.Struct) (models.Webpage, error) {
	var w models.Webpage
	for key, v := range s.GetFields() {
		switch key {
		case "id":
			id, err := parseID(v)
			if err != nil {
				return models.Webpage{}, err
			}
			w.ID = id
		case "url", "title", "description", "imageUrl", "createdAt":
			str, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return models.Webpage{}, fmt.Errorf("field %s: want a string", key)
			}
			if err := setString(&w, key, str.StringValue); err != nil {
				return models.Webpage{}, err
			}
		default:
			return models.Webpage{}, fmt.Errorf("unknown field %s", key)
		}
	}
	return w, nil
}

func idValue(id int64) *structpb.Value {
	if id > MaxExactID || id < -MaxExactID {
		return structpb.NewStringValue(strconv.FormatInt(id, 10))
	}
	return structpb.NewNumberValue(float64(id))
}

func parseID(v *structpb.Value) (int64, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n > MaxExactID || n < -MaxExactID || n != float64(int64(n)) {
			return 0, fmt.Errorf("field id: want an integer within ±%d", int64(MaxExactID))
		}
		return int64(n), nil
	case *structpb.Value_StringValue:
		id, err := strconv.ParseInt(k.StringValue, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field id: %w", err)
		}
		return id, nil
	}
	return 0, fmt.Errorf("field id: want an integer")
}

func setString(w *models.Webpage, key, val string) error {
	switch key {
	case "url":
		w.URL = val
	case "title":
		w.Title = val
	case "description":
		w.Description = val
	case "imageUrl":
		w.ImageURL = val
	case "createdAt":
		if val == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			return fmt.Errorf("field createdAt: %w", err)
		}
		w.CreatedAt = t
	}
	return nil
}

// ToList encodes a list of webpages.
func ToList(list []models.Webpage) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(list))
	for _, w := range list {
		values = append(values, structpb.NewStructValue(ToStruct(w)))
	}
	return &structpb.ListValue{Values: values}
}

// FromList decodes a list of webpages.
func FromList(l *structpb.ListValue) ([]models.Webpage, error) {
	out := make([]models.Webpage, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("item %d: want a struct", i)
		}
		w, err := FromStruct(s)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}
