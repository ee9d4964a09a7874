package server

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/getzep/zep-ner/config"
	"github.com/getzep/zep-ner/pkg/models"
)

const (
	versionHeader   = "x-zep-ner-version"
	requestIDHeader = "x-request-id"
)

// RequestLogger assigns a request id, sends the version and request id as
// response headers, and logs every call once it completes.
func RequestLogger(log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		requestID := incomingRequestID(ctx)

		// Only fails if the stream is gone, in which case nobody reads it.
		_ = grpc.SetHeader(ctx, metadata.Pairs(
			versionHeader, config.VersionString,
			requestIDHeader, requestID,
		))

		resp, err := handler(ctx, req)

		entry := log.WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"request_id": requestID,
			"code":       status.Code(err).String(),
			"duration":   time.Since(start),
		})
		if err != nil {
			entry.WithError(err).Warn("call failed")
		} else {
			entry.Info("call completed")
		}
		return resp, err
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDHeader); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}

// ErrorStatus converts domain errors into gRPC status errors.
func ErrorStatus(
	ctx context.Context,
	req interface{},
	_ *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, models.ErrDecode):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}

// Recoverer turns a panic inside a handler into a ToolkitError so that a
// misbehaving toolkit fails the call instead of the process.
func Recoverer(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = models.NewToolkitError(path.Base(info.FullMethod), fmt.Errorf("panic: %v", r))
		}
	}()
	return handler(ctx, req)
}
