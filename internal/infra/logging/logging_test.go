package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWith_AttachesContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := WithJobID(context.Background(), "01JLOGTEST")
	ctx = WithUserID(ctx, "user-7")

	With(ctx, &base).Info().Msg("status read")

	out := buf.String()
	if !strings.Contains(out, `"job_id":"01JLOGTEST"`) {
		t.Fatalf("job_id missing from log line: %s", out)
	}
	if !strings.Contains(out, `"user_id":"user-7"`) {
		t.Fatalf("user_id missing from log line: %s", out)
	}
}

func TestWith_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	With(context.Background(), &base).Info().Msg("no context fields")

	out := buf.String()
	if strings.Contains(out, "job_id") || strings.Contains(out, "user_id") {
		t.Fatalf("unexpected context fields in: %s", out)
	}
}
