package material

import (
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/shade"
)

// fallbackSurfaceSource is the neutral gray surface used when a
// material network is missing or structurally empty. Kept as a
// complete WGSL module so it can be validated by the shader
// compiler at load time.
const fallbackSurfaceSource = `@fragment
fn surface_main() -> @location(0) vec4<f32> {
    return vec4<f32>(0.5, 0.5, 0.5, 1.0);
}
`

// fallbackShader is the process-wide default surface shader. It is
// loaded once, shared read-only by every material, and never torn
// down (immutable after load, reclaimed at process exit).
type fallbackShader struct {
	source   string
	metadata map[string]any
	valid    bool
}

var (
	fallbackOnce   sync.Once
	fallbackShared *fallbackShader
)

// loadFallbackShader returns the shared fallback shader, validating
// it on first use. Validation failure is a soft failure: a warning
// is logged and the shader is used anyway, meaning downstream
// compilation fails and the primitive is not drawn, but the process
// never crashes.
func loadFallbackShader() *fallbackShader {
	fallbackOnce.Do(func() {
		fallbackShared = &fallbackShader{
			source:   fallbackSurfaceSource,
			metadata: map[string]any{},
		}

		if _, err := naga.Compile(fallbackSurfaceSource); err != nil {
			shade.Logger().Warn("failed to validate fallback surface shader, primitives using it will not draw",
				"err", err)
			return
		}
		fallbackShared.valid = true
	})
	return fallbackShared
}
