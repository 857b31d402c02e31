package grpc

// proto.go defines the gRPC server interface derived from stroke/v1/stroke.proto.
// This file serves as a stand-in for generated code. Once code generation is
// wired, replace this file with the generated package import.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StrokeServiceServer is the server API for StrokeService.
type StrokeServiceServer interface {
	Assess(context.Context, *AssessRequest) (*AssessResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	mustEmbedUnimplementedStrokeServiceServer()
}

// UnimplementedStrokeServiceServer provides forward-compatible default implementations.
type UnimplementedStrokeServiceServer struct{}

func (UnimplementedStrokeServiceServer) Assess(context.Context, *AssessRequest) (*AssessResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Assess not implemented")
}
func (UnimplementedStrokeServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedStrokeServiceServer) mustEmbedUnimplementedStrokeServiceServer() {}

// RegisterStrokeServiceServer registers the StrokeServiceServer with the gRPC server.
func RegisterStrokeServiceServer(s *grpclib.Server, srv StrokeServiceServer) {
	s.RegisterService(&_StrokeService_serviceDesc, srv)
}

var _StrokeService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "stroke.v1.StrokeService",
	HandlerType: (*StrokeServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Assess", Handler: _StrokeService_Assess_Handler},
		{MethodName: "GetAssessment", Handler: _StrokeService_GetAssessment_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _StrokeService_Assess_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AssessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StrokeServiceServer).Assess(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/stroke.v1.StrokeService/Assess",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StrokeServiceServer).Assess(ctx, req.(*AssessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StrokeService_GetAssessment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetAssessmentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StrokeServiceServer).GetAssessment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/stroke.v1.StrokeService/GetAssessment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StrokeServiceServer).GetAssessment(ctx, req.(*GetAssessmentRequest))
	}
	return interceptor(ctx, in, info, handler)
}
