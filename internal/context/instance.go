package context

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/vkutil"
)

const validationLayerName = "VK_LAYER_KHRONOS_validation"

// createInstance mirrors vulkanClasses.cpp:1005-1151, simplified: this core
// enables/disables the single Khronos validation layer as a whole rather
// than threading VkLayerSettingEXT knobs per sub-check (celer-vkg's
// instance.go likewise treats "validation on/off" as one decision, not a
// per-feature matrix). VK_KHR_surface and the platform surface extensions
// are always requested, the debug extensions only when validation is
// enabled; anything unavailable is logged and skipped rather than treated
// as fatal.
func (c *Context) createInstance(applicationName string, wantValidation bool) {
	var apiVersion uint32
	vk.EnumerateInstanceVersion(&apiVersion)

	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   applicationName,
		ApplicationVersion: vk.MakeVersion(0, 0, 1),
		PEngineName:        "eos",
		EngineVersion:      vk.MakeVersion(0, 0, 1),
		ApiVersion:         apiVersion,
	}

	c.validationEnabled = wantValidation && layerAvailable(validationLayerName)
	if wantValidation && !c.validationEnabled {
		c.logger.Warn("validation requested but layer not present", "layer", validationLayerName)
	}

	available := availableInstanceExtensions()
	wanted := []string{"VK_KHR_surface"}
	if c.validationEnabled {
		wanted = append(wanted, "VK_EXT_debug_utils", "VK_EXT_debug_report")
	}
	wanted = append(wanted, platformSurfaceExtensions()...)

	enabled := make([]string, 0, len(wanted))
	for _, name := range wanted {
		if available[name] {
			enabled = append(enabled, name)
		} else {
			c.logger.Warn("instance extension not available", "extension", name)
		}
	}

	var layers []string
	if c.validationEnabled {
		layers = []string{validationLayerName}
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(enabled)),
		PpEnabledExtensionNames: enabled,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var instance vk.Instance
	vkutil.Check(vk.CreateInstance(&createInfo, nil, &instance), "vkCreateInstance")
	vk.InitInstance(instance)
	c.instance = instance
}

func layerAvailable(name string) bool {
	var count uint32
	vk.EnumerateInstanceLayerProperties(&count, nil)
	layers := make([]vk.LayerProperties, count)
	vk.EnumerateInstanceLayerProperties(&count, layers)
	for i := range layers {
		layers[i].Deref()
		if vk.ToString(layers[i].LayerName[:]) == name {
			return true
		}
	}
	return false
}

func availableInstanceExtensions() map[string]bool {
	var count uint32
	vk.EnumerateInstanceExtensionProperties("", &count, nil)
	exts := make([]vk.ExtensionProperties, count)
	vk.EnumerateInstanceExtensionProperties("", &count, exts)

	set := make(map[string]bool, count)
	for i := range exts {
		exts[i].Deref()
		set[vk.ToString(exts[i].ExtensionName[:])] = true
	}
	return set
}

// setupDebugMessenger installs a debug report callback that forwards driver
// messages to the structured logger, only when validation is enabled.
func (c *Context) setupDebugMessenger() {
	if !c.validationEnabled {
		return
	}

	createInfo := vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit) | vk.DebugReportFlags(vk.DebugReportWarningBit) | vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint, messageCode int32, pLayerPrefix, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
			c.logger.Warn("vulkan validation", "layer", pLayerPrefix, "message", pMessage)
			return vk.Bool32(vk.False)
		},
	}

	var messenger vk.DebugReportCallback
	vkutil.Check(vk.CreateDebugReportCallback(c.instance, &createInfo, nil, &messenger), "vkCreateDebugReportCallbackEXT")
	c.debugMessenger = messenger
}
