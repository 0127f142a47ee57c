package generation

import "context"

// Options are the generation settings a caller may override. Nil/zero means
// provider default.
type Options struct {
	Temperature     *float32
	MaxOutputTokens int32
}

// Generator sends an ordered list of text parts to an LLM and returns the
// generated text.
type Generator interface {
	Generate(ctx context.Context, parts []string, opts Options) (string, error)
}

// Func adapts a plain function to Generator.
type Func func(ctx context.Context, parts []string, opts Options) (string, error)

func (f Func) Generate(ctx context.Context, parts []string, opts Options) (string, error) {
	return f(ctx, parts, opts)
}

// Temperature is a convenience for filling Options.Temperature.
func Temperature(t float32) *float32 {
	return &t
}
