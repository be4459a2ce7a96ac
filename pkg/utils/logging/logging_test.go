package logging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

func TestFromFallsBackToDefault(t *testing.T) {
	gt.V(t, logging.From(context.Background())).Equal(logging.Default())
}

func TestWithEmbedsLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("scoped message", "request_id", "req-1")

	gt.S(t, buf.String()).Contains("scoped message")
	gt.S(t, buf.String()).Contains("request_id=req-1")
}

func TestErrAttrUnwrapsGoerr(t *testing.T) {
	wrapped := goerr.Wrap(errors.New("root cause"), "lookup failed", goerr.V("meetingID", "m-1234"))

	attr := logging.ErrAttr(wrapped)
	gt.V(t, attr.Key).Equal("error")

	ge, ok := attr.Value.Any().(*goerr.Error)
	gt.B(t, ok).True()
	gt.V(t, ge.Values()["meetingID"]).Equal("m-1234")
}

func TestErrAttrKeepsPlainErrors(t *testing.T) {
	plain := errors.New("disk full")

	attr := logging.ErrAttr(plain)
	gt.V(t, attr.Key).Equal("error")
	gt.V(t, attr.Value.Any()).Equal(any(plain))
}
