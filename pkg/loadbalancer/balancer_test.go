package loadbalancer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotation(t *testing.T) {
	r := New([]string{"a", "b", "c"})
	require.Equal(t, 3, r.Len())

	require.Equal(t, "a", r.Next())
	require.Equal(t, "b", r.Next())
	require.Equal(t, "c", r.Next())
	require.Equal(t, "a", r.Next())
}

func TestRotationEmpty(t *testing.T) {
	r := New(nil)
	require.Equal(t, 0, r.Len())
	require.Equal(t, "", r.Next())
}

func TestRotationConcurrent(t *testing.T) {
	r := New([]string{"a", "b"})
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Next()
		}()
	}
	wg.Wait()
}
