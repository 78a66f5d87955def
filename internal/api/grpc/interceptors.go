package grpc

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/olyamironova/electricity-trading-client/internal/auth"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
)

func firstValue(md metadata.MD, key string) string {
	if v := md.Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}

// withRequestLogger attaches a child logger carrying the request id and
// method to ctx. The id comes from x-request-id or is generated.
func withRequestLogger(ctx context.Context, base *logger.Logger, method string) (context.Context, string) {
	md, _ := metadata.FromIncomingContext(ctx)
	requestID := firstValue(md, auth.RequestIDMetadata)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	l := base.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("request_id", requestID).Str("method", method)
	})
	return l.WithContext(ctx), requestID
}

// LoggingUnary logs every call with its status code and duration.
func LoggingUnary(base *logger.Logger) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		ctx, requestID := withRequestLogger(ctx, base, info.FullMethod)
		_ = gogrpc.SetHeader(ctx, metadata.Pairs(auth.RequestIDMetadata, requestID))

		start := time.Now()
		resp, err := handler(ctx, req)

		logger.FromContext(ctx).Info().
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Send()
		return resp, err
	}
}

type wrappedStream struct {
	gogrpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context { return w.ctx }

func LoggingStream(base *logger.Logger) gogrpc.StreamServerInterceptor {
	return func(srv any, ss gogrpc.ServerStream, info *gogrpc.StreamServerInfo, handler gogrpc.StreamHandler) error {
		ctx, requestID := withRequestLogger(ss.Context(), base, info.FullMethod)
		_ = ss.SetHeader(metadata.Pairs(auth.RequestIDMetadata, requestID))

		start := time.Now()
		err := handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})

		logger.FromContext(ctx).Info().
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Send()
		return err
	}
}

// checkKey accepts every call when keys is empty.
func checkKey(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	md, _ := metadata.FromIncomingContext(ctx)
	key := firstValue(md, auth.KeyMetadata)
	if key == "" {
		return status.Error(codes.Unauthenticated, "missing api key")
	}
	if !slices.Contains(keys, key) {
		return status.Error(codes.PermissionDenied, "api key not allowed")
	}
	return nil
}

func APIKeyUnary(keys []string) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		if err := checkKey(ctx, keys); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func APIKeyStream(keys []string) gogrpc.StreamServerInterceptor {
	return func(srv any, ss gogrpc.ServerStream, info *gogrpc.StreamServerInfo, handler gogrpc.StreamHandler) error {
		if err := checkKey(ss.Context(), keys); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func checkSignature(ctx context.Context, v *auth.Verifier, method string) error {
	md, _ := metadata.FromIncomingContext(ctx)
	err := v.Verify(method,
		firstValue(md, auth.TimestampMetadata),
		firstValue(md, auth.NonceMetadata),
		firstValue(md, auth.SignatureMetadata))
	if err != nil {
		return status.Error(codes.Unauthenticated, err.Error())
	}
	return nil
}

// SignatureUnary rejects calls whose HMAC signature does not verify.
func SignatureUnary(v *auth.Verifier) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		if err := checkSignature(ctx, v, info.FullMethod); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func SignatureStream(v *auth.Verifier) gogrpc.StreamServerInterceptor {
	return func(srv any, ss gogrpc.ServerStream, info *gogrpc.StreamServerInfo, handler gogrpc.StreamHandler) error {
		if err := checkSignature(ss.Context(), v, info.FullMethod); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

// ServerOptions chains logging, api key and, when v is not nil, signature checks.
func ServerOptions(base *logger.Logger, keys []string, v *auth.Verifier) []gogrpc.ServerOption {
	unary := []gogrpc.UnaryServerInterceptor{LoggingUnary(base), APIKeyUnary(keys)}
	stream := []gogrpc.StreamServerInterceptor{LoggingStream(base), APIKeyStream(keys)}
	if v != nil {
		unary = append(unary, SignatureUnary(v))
		stream = append(stream, SignatureStream(v))
	}
	return []gogrpc.ServerOption{
		gogrpc.ChainUnaryInterceptor(unary...),
		gogrpc.ChainStreamInterceptor(stream...),
	}
}
