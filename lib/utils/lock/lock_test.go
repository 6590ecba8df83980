package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	ctx := context.Background()

	t.Run(`ejecuta el código protegido y devuelve su error`, func(t *testing.T) {
		executed := false
		success, err := WithDelay(ctx, "k1", time.Second, func() error {
			executed = true
			return nil
		})
		require.Nil(t, err)
		require.Equal(t, true, success)
		require.Equal(t, true, executed)
	})

	t.Run(`dos ejecuciones con la misma clave nunca se solapan`, func(t *testing.T) {
		var inside atomic.Int32
		var overlapped atomic.Bool
		var wg sync.WaitGroup
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = WithDelay(ctx, "k2", 5*time.Second, func() error {
					if inside.Add(1) > 1 {
						overlapped.Store(true)
					}
					time.Sleep(10 * time.Millisecond)
					inside.Add(-1)
					return nil
				})
			}()
		}
		wg.Wait()
		require.Equal(t, false, overlapped.Load())
	})

	t.Run(`al vencer la espera devuelve success falso sin ejecutar`, func(t *testing.T) {
		hold := make(chan struct{})
		go func() {
			_, _ = WithDelay(ctx, "k3", time.Second, func() error {
				<-hold
				return nil
			})
		}()
		time.Sleep(20 * time.Millisecond)

		executed := false
		success, err := WithDelay(ctx, "k3", 100*time.Millisecond, func() error {
			executed = true
			return nil
		})
		close(hold)
		require.Nil(t, err)
		require.Equal(t, false, success)
		require.Equal(t, false, executed)
	})

	t.Run(`claves distintas no se bloquean entre sí`, func(t *testing.T) {
		hold := make(chan struct{})
		go func() {
			_, _ = WithDelay(ctx, "k4", time.Second, func() error {
				<-hold
				return nil
			})
		}()
		time.Sleep(20 * time.Millisecond)

		success, err := WithDelay(ctx, "k5", 100*time.Millisecond, func() error {
			return nil
		})
		close(hold)
		require.Nil(t, err)
		require.Equal(t, true, success)
	})
}
