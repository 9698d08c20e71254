// Package async wraps goroutines as channels that deliver their result.
package async

import "context"

// Job runs f in the background. The returned channel is closed when f returns.
func Job(f func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		f()
		close(done)
	}()
	return done
}

func Promise[R any](f func() R) <-chan R {
	out := make(chan R, 1)
	go func() {
		out <- f()
	}()
	return out
}

func Gather0(c ...<-chan struct{}) <-chan struct{} {
	return Job(func() {
		for _, f := range c {
			<-f
		}
	})
}

// GatherN collects one value from each channel, in argument order.
func GatherN[R any](cs ...<-chan R) <-chan []R {
	return Promise(func() []R {
		results := make([]R, len(cs))
		for i, f := range cs {
			results[i] = <-f
		}
		return results
	})
}

// Merge fans every input into one unbuffered channel, so the reader handles
// values one at a time. It is closed once every input is closed or ctx is done.
func Merge[T any](ctx context.Context, ins ...<-chan T) <-chan T {
	out := make(chan T)
	jobs := make([]<-chan struct{}, len(ins))
	for i, in := range ins {
		jobs[i] = Job(func() { forward(ctx, in, out) })
	}
	Job(func() {
		<-Gather0(jobs...)
		close(out)
	})
	return out
}

func forward[T any](ctx context.Context, in <-chan T, out chan<- T) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}
}
