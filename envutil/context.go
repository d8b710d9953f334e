package envutil

import (
	"context"
	"maps"
	"os"
)

type overridesKey struct{}

// WithEnvOverride returns a context in which key reads as value, regardless of
// the process environment. Readers consult the context before os.LookupEnv, so
// tests can vary settings without t.Setenv.
func WithEnvOverride(ctx context.Context, key string, value string) context.Context {
	return WithEnvOverrides(ctx, map[string]string{key: value})
}

// WithEnvOverrides is WithEnvOverride for many keys at once. Later overrides
// win over earlier ones.
func WithEnvOverrides(ctx context.Context, values map[string]string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	merged := maps.Clone(overrides(ctx))
	if merged == nil {
		merged = make(map[string]string, len(values))
	}

	maps.Copy(merged, values)

	return context.WithValue(ctx, overridesKey{}, merged)
}

func overrides(ctx context.Context) map[string]string {
	if ctx == nil {
		return nil
	}

	vals, _ := ctx.Value(overridesKey{}).(map[string]string)

	return vals
}

// lookup resolves key from the context overrides first, then the process
// environment.
func lookup(ctx context.Context, key string) (string, Source, bool) {
	if val, ok := overrides(ctx)[key]; ok {
		return val, SourceContext, true
	}

	if val, ok := os.LookupEnv(key); ok {
		return val, SourceEnvironment, true
	}

	return "", SourceNone, false
}
