package shade

// DirtyBits is a bitmask describing which aspects of a material are
// out of date with the scene. The change tracker hands a mask to
// Material.Sync; Sync clears it on completion.
type DirtyBits uint32

// Dirty bit flags.
const (
	// Clean means no re-synchronization is needed.
	Clean DirtyBits = 0

	// DirtyParams indicates material parameter values changed.
	DirtyParams DirtyBits = 1 << 0

	// DirtyResource indicates the material network itself changed.
	DirtyResource DirtyBits = 1 << 1

	// DirtyMaterialID is the render-primitive dirty bit used when all
	// primitives must re-evaluate their material binding.
	DirtyMaterialID DirtyBits = 1 << 2

	// AllDirty is the initial mask for a freshly inserted material.
	AllDirty = DirtyParams | DirtyResource
)

// Has reports whether any bit of mask is set in b.
func (b DirtyBits) Has(mask DirtyBits) bool {
	return b&mask != 0
}
