package context

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/handle"
	"github.com/xanderbert/eos/internal/vkutil"
)

// ShaderInfo describes a compiled SPIR-V module and its declared
// push-constant budget.
type ShaderInfo struct {
	SPIRV             []uint32
	PushConstantsSize uint32
	DebugName         string
}

// CreateShaderModule creates a shader module and stores it in the shared
// pool. Grounded on vulkanClasses.cpp:874-897.
func (c *Context) CreateShaderModule(info ShaderInfo) handle.Handle {
	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(info.SPIRV) * 4),
		PCode:    info.SPIRV,
	}

	var module vk.ShaderModule
	vkutil.Check(vk.CreateShaderModule(c.device, &createInfo, nil, &module), "vkCreateShaderModule")
	vkutil.Assertf(module != vk.NullShaderModule, "failed to create shader module")
	vkutil.SetDebugName(c.device, vk.ObjectTypeShaderModule, uintptr(module), info.DebugName)

	return c.shaderModules.Create(&ShaderModule{Module: module, PushConstantsSize: info.PushConstantsSize})
}

// DestroyShaderModule destroys the module immediately — shader modules are
// destroyed eagerly, not deferred, because nothing keeps recording work
// against a VkShaderModule handle after pipeline creation (spec.md §8, S6:
// "no deferred task is scheduled"). Idempotent (spec.md §7.4).
// Grounded on vulkanClasses.cpp:962-974.
func (c *Context) DestroyShaderModule(h handle.Handle) {
	sm, ok := c.shaderModules.Get(h)
	if !ok {
		return
	}

	if sm.Module != vk.NullShaderModule {
		vk.DestroyShaderModule(c.device, sm.Module, nil)
	}
	c.shaderModules.Destroy(h)
}
