package material

import "github.com/gogpu/shade/texture"

// NetworkMap is the raw material network handed over by the scene:
// a node graph plus the terminal nodes (surface, displacement). The
// material treats it as opaque input for the network processor.
type NetworkMap struct {
	Terminals []string
	Nodes     map[string]any
}

// Empty reports whether the network is structurally empty: no
// terminals or no nodes. Empty networks degrade to the fallback
// surface shader, never to an error.
func (m *NetworkMap) Empty() bool {
	return m == nil || len(m.Terminals) == 0 || len(m.Nodes) == 0
}

// TextureDescriptor describes one texture the processed network
// references, on the scene-texture resolution path. Descriptors are
// recomputed on every sync pass; they persist only through the
// registry lookups they feed.
type TextureDescriptor struct {
	// Name is the shader input name derived from the shading node.
	Name string

	Type texture.Type

	// TextureID is the content identity used as registry key.
	TextureID texture.ID

	Sampler       texture.SamplerParameters
	MemoryRequest uint64
}

// NetworkProcessor turns a raw material network into shader source
// and parameter descriptors. It is an external collaborator: shade
// consumes its outputs and never inspects the network itself.
//
// A processor is owned by a single material and called from that
// material's sync pass only.
type NetworkProcessor interface {
	// ProcessMaterialNetwork compiles the network for the material
	// with the given id. The accessors below return the results of
	// the most recent call.
	ProcessMaterialNetwork(id string, network *NetworkMap)

	FragmentCode() string
	GeometryCode() string
	Metadata() map[string]any
	MaterialTag() string
	MaterialParams() []Param
	TextureDescriptors() []TextureDescriptor

	// ClearShaderCache drops cached shader snippets so the next
	// process pass re-reads them from disk. Used by Reload.
	ClearShaderCache()
}
