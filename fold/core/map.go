package core

import (
	"context"
)

// DefaultBufferSize is the default buffer size for internal channels.
const DefaultBufferSize = 64

// TransformConfig holds configuration options for stream transforms.
type TransformConfig struct {
	BufferSize int
}

// TransformOption is a functional option for configuring transforms.
type TransformOption func(*TransformConfig)

// WithBufferSize sets the buffer size of a transform's output channel.
// Use 0 for unbuffered operation.
func WithBufferSize(size int) TransformOption {
	return func(c *TransformConfig) {
		c.BufferSize = size
	}
}

func applyOptions(opts ...TransformOption) TransformConfig {
	cfg := TransformConfig{BufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Mapper maps each Result of a Stream to exactly one Result. Sources use it
// to turn raw records into elements.
type Mapper[IN, OUT any] func(Result[IN]) Result[OUT]

// Map creates a Mapper from a value function. Errors and sentinels pass
// through; an error or panic from mapFunc becomes an error Result.
func Map[IN, OUT any](mapFunc func(IN) (OUT, error)) Mapper[IN, OUT] {
	return func(res Result[IN]) (out Result[OUT]) {
		if res.IsError() {
			return Err[OUT](res.Error())
		}
		if res.IsSentinel() {
			return Sentinel[OUT](res.Sentinel())
		}

		defer func() {
			if r := recover(); r != nil {
				out = Err[OUT](NewPanicError(r))
			}
		}()
		mapped, err := mapFunc(res.Value())
		if err != nil {
			return Err[OUT](err)
		}
		return Ok(mapped)
	}
}

// Apply maps a stream with the default configuration.
func (m Mapper[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return m.ApplyWith(s)
}

// ApplyWith maps a stream with custom options.
func (m Mapper[IN, OUT]) ApplyWith(s Stream[IN], opts ...TransformOption) Stream[OUT] {
	cfg := applyOptions(opts...)
	return Emit(func(ctx context.Context) <-chan Result[OUT] {
		out := make(chan Result[OUT], cfg.BufferSize)
		go func() {
			defer close(out)
			for res := range s.Emit(ctx) {
				select {
				case <-ctx.Done():
					return
				case out <- m(res):
				}
			}
		}()
		return out
	})
}
