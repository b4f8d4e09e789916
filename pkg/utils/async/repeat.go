package async

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/utils/errutil"
	"github.com/secmon-lab/regform/pkg/utils/logging"
)

// Repeat calls handler every interval until ctx is done. A failing or
// panicking run is logged and does not stop the loop.
func Repeat(ctx context.Context, interval time.Duration, handler func(ctx context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(ctx, handler)
		}
	}
}

func runOnce(ctx context.Context, handler func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("panic in repeated handler", "panic", r)
		}
	}()

	if err := handler(ctx); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err, "repeated handler failed"), "async handler failed")
	}
}
