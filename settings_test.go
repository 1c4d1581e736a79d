package shade

import "testing"

func TestUseSceneTexturesToggle(t *testing.T) {
	orig := UseSceneTextures()
	t.Cleanup(func() { SetUseSceneTextures(orig) })

	SetUseSceneTextures(true)
	if !UseSceneTextures() {
		t.Error("expected scene textures enabled")
	}
	SetUseSceneTextures(false)
	if UseSceneTextures() {
		t.Error("expected scene textures disabled")
	}
}

func TestBindlessTexturesDefaultOff(t *testing.T) {
	orig := BindlessTexturesEnabled()
	t.Cleanup(func() { SetBindlessTexturesEnabled(orig) })

	SetBindlessTexturesEnabled(false)
	if BindlessTexturesEnabled() {
		t.Error("bindless must default to off until the capability is registered")
	}
	SetBindlessTexturesEnabled(true)
	if !BindlessTexturesEnabled() {
		t.Error("expected bindless enabled after registration")
	}
}

func TestDirtyBitsHas(t *testing.T) {
	bits := AllDirty
	if !bits.Has(DirtyParams) || !bits.Has(DirtyResource) {
		t.Error("AllDirty must include params and resource bits")
	}
	if Clean.Has(DirtyParams) {
		t.Error("Clean has no bits set")
	}
	if DirtyParams.Has(DirtyResource) {
		t.Error("distinct bits must not overlap")
	}
}
