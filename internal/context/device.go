package context

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/vkutil"
)

type hardwareDeviceDescription struct {
	physicalDevice vk.PhysicalDevice
	deviceType     HardwareDeviceType
	name           string
}

// enumerateHardwareDevices mirrors vulkanClasses.cpp:1198-1218: it lists
// every physical device matching the caller's preference, or every device
// when the preference is HardwareDeviceSoftware ("no preference").
func (c *Context) enumerateHardwareDevices(preferred HardwareDeviceType) []hardwareDeviceDescription {
	var count uint32
	vkutil.Check(vk.EnumeratePhysicalDevices(c.instance, &count, nil), "vkEnumeratePhysicalDevices(count)")
	devices := make([]vk.PhysicalDevice, count)
	vkutil.Check(vk.EnumeratePhysicalDevices(c.instance, &count, devices), "vkEnumeratePhysicalDevices")
	vkutil.Assertf(count > 0, "no physical Vulkan devices found")

	var out []hardwareDeviceDescription
	for _, pd := range devices {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(pd, &props)
		props.Deref()

		deviceType := toHardwareDeviceType(props.DeviceType)
		if preferred != HardwareDeviceSoftware && preferred != deviceType {
			continue
		}

		out = append(out, hardwareDeviceDescription{
			physicalDevice: pd,
			deviceType:     deviceType,
			name:           vk.ToString(props.DeviceName[:]),
		})
	}

	return out
}

// selectHardwareDevice picks the first compatible device, matching the
// source's SelectHardwareDevice, which does not otherwise rank candidates.
func selectHardwareDevice(devices []hardwareDeviceDescription) vk.PhysicalDevice {
	vkutil.Assertf(len(devices) > 0, "no physical device matched the requested hardware type")
	return devices[0].physicalDevice
}

const graphicsQueueFlags = vk.QueueFlags(vk.QueueGraphicsBit)

// createLogicalDevice picks the first graphics-capable queue family (its
// presentation support is checked later, by swapchain.New) and
// creates the logical device with the extensions synchronization2 and
// dynamic rendering need (spec.md §1: this core targets Vulkan 1.3
// synchronization2 + dynamic rendering).
func (c *Context) createLogicalDevice() {
	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(c.physicalDevice, &familyCount, nil)
	families := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(c.physicalDevice, &familyCount, families)

	graphicsFamily := ^uint32(0)
	for i := uint32(0); i < familyCount; i++ {
		families[i].Deref()
		if families[i].QueueFlags&graphicsQueueFlags != 0 {
			graphicsFamily = i
			break
		}
	}
	vkutil.Assertf(graphicsFamily != ^uint32(0), "no graphics-capable queue family found")
	c.graphicsQueueFamily = graphicsFamily

	queuePriority := []float32{1.0}
	queueCreateInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: graphicsFamily,
		QueueCount:       1,
		PQueuePriorities: queuePriority,
	}

	sync2Features := vk.PhysicalDeviceSynchronization2Features{
		SType:            vk.StructureTypePhysicalDeviceSynchronization2Features,
		Synchronization2: vk.True,
	}
	dynamicRenderingFeatures := vk.PhysicalDeviceDynamicRenderingFeatures{
		SType:            vk.StructureTypePhysicalDeviceDynamicRenderingFeatures,
		PNext:            unsafe.Pointer(&sync2Features),
		DynamicRendering: vk.True,
	}
	timelineFeatures := vk.PhysicalDeviceTimelineSemaphoreFeatures{
		SType:             vk.StructureTypePhysicalDeviceTimelineSemaphoreFeatures,
		PNext:             unsafe.Pointer(&dynamicRenderingFeatures),
		TimelineSemaphore: vk.True,
	}

	extensions := []string{
		"VK_KHR_swapchain",
		"VK_KHR_synchronization2",
		"VK_KHR_dynamic_rendering",
		"VK_KHR_timeline_semaphore",
	}

	createInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		PNext:                   unsafe.Pointer(&timelineFeatures),
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       []vk.DeviceQueueCreateInfo{queueCreateInfo},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}

	var device vk.Device
	vkutil.Check(vk.CreateDevice(c.physicalDevice, &createInfo, nil, &device), "vkCreateDevice")
	c.device = device

	var queue vk.Queue
	vk.GetDeviceQueue(device, graphicsFamily, 0, &queue)
	c.graphicsQueue = queue
}
