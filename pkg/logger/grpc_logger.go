package logger

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// 일시적 실패로 보고 Warn으로 기록할 상태 코드
var transientCodes = map[codes.Code]struct{}{
	codes.Canceled:          {},
	codes.DeadlineExceeded:  {},
	codes.ResourceExhausted: {},
	codes.Aborted:           {},
	codes.Unavailable:       {},
}

func splitMethod(fullMethod string) (string, string) {
	return path.Dir(fullMethod)[1:], path.Base(fullMethod)
}

func logGrpcResult(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	code := status.Code(err)
	fields = append(fields, zap.String("grpc.code", code.String()))
	if err == nil {
		logger.Info(msg, fields...)
		return
	}

	fields = append(fields, zap.Error(err))
	if _, ok := transientCodes[code]; ok {
		logger.Warn(msg, fields...)
		return
	}
	logger.Error(msg, fields...)
}

// NewGrpcUnaryServerInterceptor 단일 요청 gRPC 호출 로깅 인터셉터
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		service, method := splitMethod(info.FullMethod)
		logGrpcResult(logger, "gRPC 요청", err,
			zap.String("grpc.service", service),
			zap.String("grpc.method", method),
			zap.Duration("grpc.duration", time.Since(start)),
		)
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor 스트리밍 gRPC 호출 로깅 인터셉터. 송수신 메시지 수를 함께 기록합니다.
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		counted := &countingServerStream{ServerStream: ss}
		err := handler(srv, counted)

		service, method := splitMethod(info.FullMethod)
		logGrpcResult(logger, "gRPC 스트림", err,
			zap.String("grpc.service", service),
			zap.String("grpc.method", method),
			zap.Int("grpc.recv_count", counted.recv),
			zap.Int("grpc.send_count", counted.sent),
			zap.Duration("grpc.duration", time.Since(start)),
		)
		return err
	}
}

type countingServerStream struct {
	grpc.ServerStream
	recv int
	sent int
}

func (s *countingServerStream) RecvMsg(m interface{}) error {
	err := s.ServerStream.RecvMsg(m)
	if err == nil {
		s.recv++
	}
	return err
}

func (s *countingServerStream) SendMsg(m interface{}) error {
	err := s.ServerStream.SendMsg(m)
	if err == nil {
		s.sent++
	}
	return err
}

// GrpcServerOptions 로깅 인터셉터가 설정된 gRPC 서버 옵션
func GrpcServerOptions(logger *zap.Logger) []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(NewGrpcUnaryServerInterceptor(logger)),
		grpc.ChainStreamInterceptor(NewGrpcStreamServerInterceptor(logger)),
	}
}
