// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package registry

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Package errors for device extraction.
var (
	// ErrNilProvider is returned when no device provider was given.
	ErrNilProvider = errors.New("shade: nil device provider")

	// ErrNoHALDevice is returned when the provider does not expose a
	// wgpu HAL device. The registry still operates; sampler and
	// texture objects are created without device state and binding
	// degrades to bind-as-null.
	ErrNoHALDevice = errors.New("shade: device provider does not expose a HAL device")
)

// DeviceHandle provides GPU device access from the host application.
//
// The registry RECEIVES the device from the host, it does not create
// one. For direct HAL access the provider should additionally
// implement the HalDevice() any convention used across the gogpu
// ecosystem; the returned value must be a wgpu hal.Device.
type DeviceHandle = gpucontext.DeviceProvider

// halDeviceProvider is the gogpu convention for exposing the raw HAL
// device behind a gpucontext.DeviceProvider.
type halDeviceProvider interface {
	HalDevice() any
}

// HALDevice extracts the wgpu HAL device from a provider.
func HALDevice(provider DeviceHandle) (hal.Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halDeviceProvider)
	if !ok {
		return nil, ErrNoHALDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoHALDevice
	}
	return device, nil
}
