package mon

import (
	"sync"
	"testing"
	"time"

	"github.com/zeebo/assert"
)

func TestHistogram(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		his := new(Histogram)
		assert.Equal(t, his.Total(), int64(0))
		assert.Equal(t, his.Current(), int64(0))
		assert.Equal(t, len(his.Durations()), 0)
		assert.Equal(t, his.Average(), time.Duration(0))

		his.start()
		assert.Equal(t, his.Total(), int64(0))
		assert.Equal(t, his.Current(), int64(1))

		his.done(10)
		his.start()
		his.done(30)
		assert.Equal(t, his.Total(), int64(2))
		assert.Equal(t, his.Current(), int64(0))
		assert.DeepEqual(t, his.Durations(), []time.Duration{10, 30})
		assert.Equal(t, his.Average(), time.Duration(20))
	})

	t.Run("Wraps", func(t *testing.T) {
		his := new(Histogram)
		for i := 0; i < bufferElems+10; i++ {
			his.start()
			his.done(5)
		}
		assert.Equal(t, len(his.Durations()), bufferElems)
		assert.Equal(t, his.Average(), time.Duration(5))
	})

	t.Run("Race", func(t *testing.T) {
		wg := new(sync.WaitGroup)
		his := new(Histogram)

		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := 0; i < 1e5; i++ {
				his.start()
				his.done(1)
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := 0; i < 1e5; i++ {
				his.Durations()
			}
		}()

		wg.Wait()
	})
}

func TestThunk(t *testing.T) {
	var th Thunk

	timer := th.Start()
	assert.Equal(t, th.Current(), int64(1))
	time.Sleep(time.Millisecond)
	timer.Stop()

	assert.Equal(t, th.Current(), int64(0))
	assert.Equal(t, th.Total(), int64(1))
	assert.That(t, th.Average() >= time.Millisecond)
}

func BenchmarkHistogram(b *testing.B) {
	b.Run("Start+Done", func(b *testing.B) {
		his := new(Histogram)

		for i := 0; i < b.N; i++ {
			his.start()
			his.done(1)
		}
	})

	b.Run("Thunk", func(b *testing.B) {
		var th Thunk

		for i := 0; i < b.N; i++ {
			th.Start().Stop()
		}
	})
}
