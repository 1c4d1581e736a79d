package material

import (
	"github.com/gogpu/shade"
	"github.com/gogpu/shade/registry"
	"github.com/gogpu/shade/texture"
)

// ChangeTracker receives the invalidation signals the sync pass
// produces. Implemented by the render index's change tracking.
type ChangeTracker interface {
	// MarkBatchesDirty forces validation/rebuild of draw batches.
	MarkBatchesDirty()

	// MarkAllRprimsDirty marks every render primitive with the given
	// dirty bits. Used when a material feature flag flips and the
	// engine cannot enumerate which primitives reference it.
	MarkAllRprimsDirty(bits shade.DirtyBits)
}

// RenderIndex is the slice of the render index the material sync
// pass consumes: key translation, change tracking and the resource
// registry.
type RenderIndex interface {
	// Scope identifies this render index in globally scoped texture
	// keys, so identical assets in different indexes do not alias.
	Scope() uint64

	// TextureKey translates a local texture id into its global
	// registry key.
	TextureKey(id texture.ID) registry.TextureKey

	ChangeTracker() ChangeTracker
	Registry() *registry.Registry
}

// SceneDelegate is the read-only scene data provider. Absence or
// failure of any lookup means "use fallback"; it is never fatal.
type SceneDelegate interface {
	RenderIndex() RenderIndex

	// GetMaterialResource returns the raw material network for the
	// material id, or nil.
	GetMaterialResource(id string) *NetworkMap

	// GetTextureResourceID resolves a connection path to a texture
	// content id, or texture.InvalidID.
	GetTextureResourceID(connection string) texture.ID

	// GetTextureResource loads the texture resource behind a
	// connection path discovered in the material network, or nil.
	GetTextureResource(connection string) *texture.Resource
}
