// Package material implements the dirty-bit-driven synchronization
// of scene materials with their GPU shader state.
//
// A Material is synced once per update cycle with the dirty bits the
// change tracker accumulated for it. Sync asks the network processor
// for compiled shader source and parameter descriptors, resolves
// every texture parameter to a shared resource through the registry,
// writes the merged buffer layout into the surface shader, and
// raises batch/primitive invalidation when the result differs from
// the previous pass.
package material

import (
	"github.com/gogpu/shade"
	"github.com/gogpu/shade/binder"
	"github.com/gogpu/shade/registry"
	"github.com/gogpu/shade/texture"
)

// Material tags drive batch grouping. A tag change forces a batch
// rebuild.
const (
	TagDefault     = "defaultMaterialTag"
	TagMasked      = "masked"
	TagAdditive    = "additive"
	TagTranslucent = "translucent"
	TagVolume      = "volume"
)

// metadataLimitSurfaceEvaluation is the metadata key signalling that
// the surface must be evaluated at the subdivision limit.
const metadataLimitSurfaceEvaluation = "limitSurfaceEvaluation"

// Material is the sync engine for one scene material.
//
// Sync runs on the frame's sync pass; distinct materials may sync
// concurrently, but a single material is never synced from two
// goroutines at once.
type Material struct {
	id        string
	processor NetworkProcessor

	surfaceShader *SurfaceShader
	shaderRef     shade.ShaderCodeRef
	shaderTable   *shade.ShaderTable

	initialized bool

	hasPtex                   bool
	hasLimitSurfaceEvaluation bool
	hasDisplacement           bool
	materialTag               string

	// internalHandles owns the fallback texture handles created for
	// parameters that could not be resolved. Cleared at the start of
	// every resolution pass so fallbacks never accumulate.
	internalHandles []*texture.ResourceHandle
}

// New creates a material for the given scene id. The processor is
// the external network compiler the material consults on every sync.
func New(id string, processor NetworkProcessor) *Material {
	shade.Logger().Debug("material created", "id", id)
	return &Material{
		id:            id,
		processor:     processor,
		surfaceShader: NewSurfaceShader(),
		materialTag:   TagDefault,
	}
}

// ID returns the scene id of the material.
func (m *Material) ID() string { return m.id }

// HasPtex reports whether the last synced network references a
// multi-tile adaptive texture.
func (m *Material) HasPtex() bool { return m.hasPtex }

// HasDisplacement reports whether the last synced network produced
// geometry (displacement) source.
func (m *Material) HasDisplacement() bool { return m.hasDisplacement }

// HasLimitSurfaceEvaluation reports whether the last synced network
// requests limit-surface evaluation.
func (m *Material) HasLimitSurfaceEvaluation() bool { return m.hasLimitSurfaceEvaluation }

// MaterialTag returns the batch-grouping tag of the last sync.
func (m *Material) MaterialTag() string { return m.materialTag }

// GetShaderCode returns the surface shader the material keeps in
// sync.
func (m *Material) GetShaderCode() *SurfaceShader { return m.surfaceShader }

// SetSurfaceShader replaces the surface shader object. Used by
// render passes that substitute shading (e.g. picking/ID rendering).
func (m *Material) SetSurfaceShader(s *SurfaceShader) { m.surfaceShader = s }

// InitialDirtyBits returns the dirty bits a freshly inserted
// material starts with.
func (m *Material) InitialDirtyBits() shade.DirtyBits { return shade.AllDirty }

// Reload drops cached shader snippets so the next sync re-reads
// them.
func (m *Material) Reload() {
	if m.processor != nil {
		m.processor.ClearShaderCache()
	}
	m.surfaceShader.Reload()
}

// Finalize releases every registry reference the material holds.
// The material must not be synced afterwards.
func (m *Material) Finalize() {
	m.surfaceShader.SetNamedTextureHandles(nil)
	m.internalHandles = nil
	if m.shaderTable != nil {
		m.shaderTable.Unregister(m.shaderRef)
		m.shaderRef = shade.ShaderCodeRef{}
		m.shaderTable = nil
	}
	shade.Logger().Debug("material removed", "id", m.id)
}

// sceneTexturesSupport reports whether the scene-texture path can
// handle a texture shape. Unsupported shapes stay on the legacy
// per-parameter path even when the toggle is on.
func sceneTexturesSupport(t texture.Type) bool {
	switch t {
	case texture.TypeUv, texture.TypeField, texture.TypePtex:
		return true
	default:
		return false
	}
}

// namedTextureHandles allocates the shared handles for the processed
// network's texture descriptors through the registry.
func namedTextureHandles(
	descs []TextureDescriptor,
	owner shade.ShaderCodeRef,
	reg *registry.Registry,
) []texture.NamedHandle {
	bindless := binder.UsesBindlessTextures()

	var result []texture.NamedHandle
	for _, desc := range descs {
		if !sceneTexturesSupport(desc.Type) {
			continue
		}
		handle := reg.AllocateTextureHandle(
			desc.TextureID,
			desc.Type,
			desc.Sampler,
			desc.MemoryRequest,
			bindless,
			owner,
		)
		result = append(result, texture.NamedHandle{
			Name:   desc.Name,
			Type:   desc.Type,
			Handle: handle,
		})
	}
	return result
}

// Sync brings the surface shader up to date with the scene. It is a
// no-op when neither the resource nor the params dirty bit is set;
// otherwise it reprocesses the network, resolves textures, updates
// the shader object and clears the mask.
func (m *Material) Sync(scene SceneDelegate, dirtyBits *shade.DirtyBits) {
	bits := *dirtyBits
	if !bits.Has(shade.DirtyResource) && !bits.Has(shade.DirtyParams) {
		*dirtyBits = shade.Clean
		return
	}

	renderIndex := scene.RenderIndex()
	reg := renderIndex.Registry()

	if !m.shaderRef.Valid() {
		m.shaderTable = reg.Shaders()
		m.shaderRef = m.shaderTable.Register(m.surfaceShader)
	}

	useSceneTextures := shade.UseSceneTextures()

	needsRprimMaterialStateUpdate := false

	var (
		fragmentSource     string
		geometrySource     string
		metadata           map[string]any
		materialTag        = m.materialTag
		params             []Param
		textureDescriptors []TextureDescriptor
	)

	network := scene.GetMaterialResource(m.id)
	if !network.Empty() {
		m.processor.ProcessMaterialNetwork(m.id, network)
		fragmentSource = m.processor.FragmentCode()
		geometrySource = m.processor.GeometryCode()
		metadata = m.processor.Metadata()
		materialTag = m.processor.MaterialTag()
		params = m.processor.MaterialParams()
		if useSceneTextures {
			textureDescriptors = m.processor.TextureDescriptors()
		}
	}

	if fragmentSource == "" && geometrySource == "" {
		fallback := loadFallbackShader()
		fragmentSource = fallback.source
		// The fallback material never displaces geometry.
		geometrySource = ""
		metadata = fallback.metadata
	}

	// Re-batch when the shader or material tag changes, i.e. when
	// network topology changes or the prim goes from opaque to
	// translucent. Source text comparison stands in for topology
	// comparison; a false positive only costs a rebuild. Skipped on
	// the first sync since batches are built afterwards anyway.
	if m.initialized {
		markBatchesDirty := m.materialTag != materialTag
		if !markBatchesDirty {
			oldFragmentSource := m.surfaceShader.Source(StageFragment)
			oldGeometrySource := m.surfaceShader.Source(StageGeometry)
			markBatchesDirty = oldFragmentSource != fragmentSource ||
				oldGeometrySource != geometrySource
		}
		if markBatchesDirty {
			renderIndex.ChangeTracker().MarkBatchesDirty()
		}
	}

	m.surfaceShader.SetFragmentSource(fragmentSource)
	m.surfaceShader.SetGeometrySource(geometrySource)

	hasDisplacement := geometrySource != ""
	if m.hasDisplacement != hasDisplacement {
		m.hasDisplacement = hasDisplacement
		needsRprimMaterialStateUpdate = true
	}

	hasLimitSurfaceEvaluation := metadataBool(metadata, metadataLimitSurfaceEvaluation)
	if m.hasLimitSurfaceEvaluation != hasLimitSurfaceEvaluation {
		m.hasLimitSurfaceEvaluation = hasLimitSurfaceEvaluation
		needsRprimMaterialStateUpdate = true
	}

	if m.materialTag != materialTag {
		m.materialTag = materialTag
		m.surfaceShader.SetMaterialTag(materialTag)
		needsRprimMaterialStateUpdate = true
	}

	m.surfaceShader.SetEnabledPrimvarFiltering(true)
	m.surfaceShader.SetParams(params)

	// Release the previous pass's fallback texture handles before
	// new ones are created.
	m.internalHandles = m.internalHandles[:0]

	var (
		specs       []binder.BufferSpec
		sources     []binder.BufferSource
		legacyDescs []ShaderTextureDescriptor
	)

	hasPtex := false
	for _, param := range params {
		switch {
		case param.IsPrimvarRedirect() || param.IsFallback():
			spec, src := fallbackSpecAndSource(param)
			specs = append(specs, spec)
			sources = append(sources, src)

		case param.IsTexture():
			if param.TextureType == texture.TypePtex {
				hasPtex = true
			}
			// The legacy path resolves per parameter unless the
			// scene-texture path is on and handles this shape.
			if !(useSceneTextures && sceneTexturesSupport(param.TextureType)) {
				handle := m.resolveTextureHandle(scene, param)
				m.processTextureParam(param, handle, &specs, &sources, &legacyDescs)
			}
		}
	}

	m.surfaceShader.SetTextureDescriptors(legacyDescs)

	if useSceneTextures {
		textures := namedTextureHandles(textureDescriptors, m.shaderRef, reg)
		m.surfaceShader.SetNamedTextureHandles(textures)
		binder.GetBufferSpecs(textures, &specs)
	} else {
		// Release any handles a previous pass acquired while the
		// scene-texture toggle was on.
		m.surfaceShader.SetNamedTextureHandles(nil)
	}

	m.surfaceShader.SetBufferSources(specs, sources)

	if m.hasPtex != hasPtex {
		m.hasPtex = hasPtex
		needsRprimMaterialStateUpdate = true
	}

	// Force rprims to a dirty material id so they re-evaluate their
	// material state: the engine does not know which rprims are
	// bound to this material. Skipped on the first sync, where any
	// affected rprim is already marked.
	if needsRprimMaterialStateUpdate && m.initialized {
		renderIndex.ChangeTracker().MarkAllRprimsDirty(shade.DirtyMaterialID)
	}

	m.initialized = true
	*dirtyBits = shade.Clean
}

// processTextureParam records the legacy binding for a texture
// parameter and, in bindless mode, its handle buffer entry.
func (m *Material) processTextureParam(
	param Param,
	handle *texture.ResourceHandle,
	specs *[]binder.BufferSpec,
	sources *[]binder.BufferSource,
	descs *[]ShaderTextureDescriptor,
) {
	if handle == nil {
		return
	}

	*descs = append(*descs, ShaderTextureDescriptor{
		Name:   param.Name,
		Type:   param.TextureType,
		Handle: handle,
	})

	if !binder.UsesBindlessTextures() || !handle.Valid() {
		return
	}
	if param.TextureType != texture.TypeUv {
		return
	}
	sampler := handle.Resource().Sampler().Uv()
	if sampler == nil || sampler.BindlessHandle == 0 {
		// Not resident yet; the entry appears once texels commit.
		return
	}
	src := binder.NewBindlessHandleSource(param.Name, sampler.BindlessHandle)
	*specs = append(*specs, binder.BufferSpec{Name: param.Name, Type: src.TupleType()})
	*sources = append(*sources, src)
}

// resolveTextureHandle resolves a texture parameter on the legacy
// path. Resolution failures degrade: a connected parameter whose
// resource cannot be found logs a warning and falls back to a 1x1
// texture built from the parameter's literal fallback value. Only
// the Uv shape has a fallback; other shapes yield no handle.
func (m *Material) resolveTextureHandle(scene SceneDelegate, param Param) *texture.ResourceHandle {
	renderIndex := scene.RenderIndex()
	reg := renderIndex.Registry()

	var (
		resource *texture.Resource
		handle   *texture.ResourceHandle
	)

	if param.Connection != "" {
		texID := scene.GetTextureResourceID(param.Connection)

		// Step 1: locate the texture in the registry. The scene-load
		// side may have inserted a resource for this texture.
		if texID != texture.InvalidID {
			texKey := renderIndex.TextureKey(texID)

			found := false
			resource, found = reg.FindTextureResource(texKey)
			if !found {
				// A bad asset can cause this; warn and continue.
				shade.Logger().Warn("no texture resource found",
					"connection", param.Connection)
				resource = nil
			}
		}

		handleKey := registry.HandlePathKey(renderIndex.Scope(), param.Connection)
		if h, found := reg.FindTextureResourceHandle(handleKey); found {
			handle = h
			handle.SetResource(resource)
		}

		// Step 2: nothing registered; the texture may be one we
		// discovered in the material network. Loading it stores the
		// handle internally in this material.
		if resource == nil {
			resource = scene.GetTextureResource(param.Connection)
		}
	}

	if handle.Valid() {
		return handle
	}

	// Unresolvable for any reason (missing connection, invalid id,
	// asset error): substitute a fallback texture.
	if resource == nil {
		if param.Connection != "" {
			shade.Logger().Warn("texture not found, using fallback texture",
				"connection", param.Connection)
		}

		// Fallback textures are only supported for Uv textures.
		if param.TextureType != texture.TypeUv {
			return nil
		}
		resource = texture.NewFallbackUv(param.Fallback)
	}

	internal := texture.NewResourceHandle(resource)
	m.internalHandles = append(m.internalHandles, internal)
	return internal
}

func metadataBool(metadata map[string]any, key string) bool {
	v, ok := metadata[key].(bool)
	return ok && v
}
