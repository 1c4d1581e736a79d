package shade

import (
	"os"
	"strconv"
	"sync/atomic"
)

// EnvUseSceneTextures is the environment variable selecting the
// scene-texture resolution path. When unset or false, materials
// resolve textures through the legacy per-parameter path.
const EnvUseSceneTextures = "SHADE_USE_SCENE_TEXTURES"

var (
	useSceneTextures        atomic.Bool
	bindlessTexturesEnabled atomic.Bool
)

func init() {
	if v, err := strconv.ParseBool(os.Getenv(EnvUseSceneTextures)); err == nil {
		useSceneTextures.Store(v)
	}
}

// UseSceneTextures reports whether the scene-texture resolution path
// is enabled. Materials read this at the start of every sync pass.
func UseSceneTextures() bool {
	return useSceneTextures.Load()
}

// SetUseSceneTextures overrides the EnvUseSceneTextures setting at
// runtime. Intended for hosts that configure the renderer
// programmatically rather than through the environment.
func SetUseSceneTextures(v bool) {
	useSceneTextures.Store(v)
}

// BindlessTexturesEnabled reports whether the device supports bindless
// textures. When enabled, textures are referenced by 64-bit handles
// written into shader buffers and draw-time bind/unbind is a no-op.
//
// The capability defaults to false and must be registered by the host
// once the device context exists; the binder re-reads it on every
// operation rather than caching it.
func BindlessTexturesEnabled() bool {
	return bindlessTexturesEnabled.Load()
}

// SetBindlessTexturesEnabled registers the device's bindless-texture
// capability. Call once after device creation, before the first sync.
func SetBindlessTexturesEnabled(v bool) {
	bindlessTexturesEnabled.Store(v)
}
