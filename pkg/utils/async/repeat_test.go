package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/regform/pkg/utils/async"
)

func TestRepeat(t *testing.T) {
	t.Run("runs until context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls atomic.Int32
		done := make(chan struct{})

		go func() {
			defer close(done)
			async.Repeat(ctx, time.Millisecond, func(ctx context.Context) error {
				if calls.Add(1) >= 3 {
					cancel()
				}
				return nil
			})
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Repeat did not stop")
		}
		gt.Number(t, int(calls.Load())).GreaterOrEqual(3)
	})

	t.Run("errors and panics do not stop the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls atomic.Int32
		done := make(chan struct{})

		go func() {
			defer close(done)
			async.Repeat(ctx, time.Millisecond, func(ctx context.Context) error {
				switch calls.Add(1) {
				case 1:
					return errors.New("transient")
				case 2:
					panic("unexpected")
				default:
					cancel()
					return nil
				}
			})
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Repeat did not stop")
		}
		gt.Number(t, int(calls.Load())).GreaterOrEqual(3)
	})
}
