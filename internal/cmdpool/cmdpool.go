// Package cmdpool implements the fixed-size ring of command buffers the
// context draws from for every recorded submission: per-slot fence and
// binary semaphore, non-blocking readiness polling, and the wait/signal
// staging that internal/context uses to chain frames through the timeline
// semaphore. Grounded line-for-line on vulkanClasses.cpp's CommandPool
// (lines 415-708).
package cmdpool

import (
	"fmt"
	"log/slog"

	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/sync2"
	"github.com/xanderbert/eos/internal/vkutil"
)

// MaxCommandBuffers is the fixed ring size (spec.md §3's CommandPool has a
// "fixed array of CommandBufferSlots (size MAX_COMMAND_BUFFERS)").
const MaxCommandBuffers = 64

// SubmitHandle is a pair (BufferIndex, SubmissionID). SubmissionID == 0 is
// the empty handle.
type SubmitHandle struct {
	BufferIndex  uint32
	SubmissionID uint32
}

// Empty reports whether h is the reserved empty handle.
func (h SubmitHandle) Empty() bool { return h.SubmissionID == 0 }

type slot struct {
	allocated  vk.CommandBuffer
	active     vk.CommandBuffer
	semaphore  vk.Semaphore
	fence      vk.Fence
	handle     SubmitHandle
	isEncoding bool
}

type waitDescriptor struct {
	semaphore vk.Semaphore
	stage     vk.PipelineStageFlags2
}

type signalDescriptor struct {
	semaphore vk.Semaphore
	value     uint64
	stage     vk.PipelineStageFlags2
}

// CommandPool is the ring of slots plus the pending wait/signal state a
// caller stages before Submit.
type CommandPool struct {
	device vk.Device
	queue  vk.Queue
	vkPool vk.CommandPool
	logger *slog.Logger

	slots     [MaxCommandBuffers]slot
	freeCount int

	pendingWait   waitDescriptor
	pendingSignal signalDescriptor

	lastSubmitSemaphore vk.Semaphore
	lastSubmitHandle    SubmitHandle
	nextSubmitHandle    SubmitHandle
	submitCounter       uint32
}

// New allocates MaxCommandBuffers command buffers from a fresh
// VkCommandPool, plus one fence and one binary semaphore per slot.
// Grounded on vulkanClasses.cpp:415-451.
func New(device vk.Device, queueFamily uint32, logger *slog.Logger) *CommandPool {
	var queue vk.Queue
	vk.GetDeviceQueue(device, queueFamily, 0, &queue)

	createInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit) | vk.CommandPoolCreateFlags(vk.CommandPoolCreateTransientBit),
		QueueFamilyIndex: queueFamily,
	}

	var vkPool vk.CommandPool
	vkutil.Check(vk.CreateCommandPool(device, &createInfo, nil, &vkPool), "vkCreateCommandPool")
	vkutil.SetDebugName(device, vk.ObjectTypeCommandPool, uintptr(vkPool), "CommandPool")

	// submitCounter starts at 1, not the Go zero value: 0 is reserved for
	// the empty SubmitHandle (SubmitHandle.Empty checks SubmissionID == 0),
	// so the first real submission must be stamped 1.
	cp := &CommandPool{device: device, queue: queue, vkPool: vkPool, logger: logger, submitCounter: 1}

	allocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        vkPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}

	for i := uint32(0); i < MaxCommandBuffers; i++ {
		var buf vk.CommandBuffer
		bufs := []vk.CommandBuffer{buf}
		vkutil.Check(vk.AllocateCommandBuffers(device, &allocateInfo, bufs), "vkAllocateCommandBuffers")

		s := &cp.slots[i]
		s.allocated = bufs[0]
		s.semaphore = sync2.NewBinarySemaphore(device, fmt.Sprintf("Semaphore of CommandBuffer: %d", i))
		s.fence = sync2.NewFence(device, fmt.Sprintf("Fence of CommandBuffer: %d", i))
		s.handle.BufferIndex = i
		cp.freeCount++
	}

	return cp
}

// Destroy waits for every outstanding submission, then destroys every
// slot's fence/semaphore and the pool itself. Grounded on
// vulkanClasses.cpp:453-467.
func (cp *CommandPool) Destroy() {
	cp.WaitAll()

	for i := range cp.slots {
		s := &cp.slots[i]
		vk.DestroyFence(cp.device, s.fence, nil)
		vk.DestroySemaphore(cp.device, s.semaphore, nil)
	}
	vk.DestroyCommandPool(cp.device, cp.vkPool, nil)
}

// WaitSemaphore stages a semaphore to be waited on by the next Submit.
// Fatal assertion if one is already pending (spec.md §7.3).
func (cp *CommandPool) WaitSemaphore(semaphore vk.Semaphore) {
	vkutil.Assertf(cp.pendingWait.semaphore == vk.NullSemaphore, "a wait semaphore is already pending")
	cp.pendingWait.semaphore = semaphore
}

// Signal stages a timeline semaphore + value to be signaled by the next
// Submit.
func (cp *CommandPool) Signal(semaphore vk.Semaphore, value uint64) {
	vkutil.Assertf(semaphore != vk.NullSemaphore, "signal semaphore must not be empty")
	cp.pendingSignal = signalDescriptor{semaphore: semaphore, value: value}
}

// WaitAll blocks until every currently-submitted (non-encoding, allocated)
// slot's fence is signaled, then reclaims them. Grounded on
// vulkanClasses.cpp:475-494.
func (cp *CommandPool) WaitAll() {
	fences := make([]vk.Fence, 0, MaxCommandBuffers)
	for i := range cp.slots {
		s := &cp.slots[i]
		if s.active != vk.NullCommandBuffer && !s.isEncoding {
			fences = append(fences, s.fence)
		}
	}

	if len(fences) > 0 {
		vkutil.Check(vk.WaitForFences(cp.device, uint32(len(fences)), fences, vk.True, vkutil.MaxTimeout), "vkWaitForFences")
	}

	cp.TryResetCommandBuffers()
}

// Wait blocks on a single submission until it retires. An empty handle
// waits for the entire device to idle. Grounded on vulkanClasses.cpp:496-520.
func (cp *CommandPool) Wait(h SubmitHandle) {
	if h.Empty() {
		vk.DeviceWaitIdle(cp.device)
		return
	}

	if cp.IsReady(h, false) {
		return
	}

	s := &cp.slots[h.BufferIndex]
	vkutil.Assertf(!s.isEncoding, "buffer %d has not been submitted yet", h.BufferIndex)

	vkutil.Check(vk.WaitForFences(cp.device, 1, []vk.Fence{s.fence}, vk.True, vkutil.MaxTimeout), "vkWaitForFences")
	cp.TryResetCommandBuffers()
}

// IsReady reports whether the submission h has retired. fastCheck skips the
// zero-timeout fence poll and only checks bookkeeping (used by the
// non-blocking deferred-task drain during normal frame processing).
// Grounded on vulkanClasses.cpp:529-560.
func (cp *CommandPool) IsReady(h SubmitHandle, fastCheck bool) bool {
	if h.Empty() {
		return true
	}

	vkutil.Assertf(h.BufferIndex < MaxCommandBuffers, "buffer index %d out of range", h.BufferIndex)

	s := &cp.slots[h.BufferIndex]

	if s.active == vk.NullCommandBuffer {
		return true
	}
	if s.handle.SubmissionID != h.SubmissionID {
		return true
	}
	if fastCheck {
		return false
	}

	return vk.WaitForFences(cp.device, 1, []vk.Fence{s.fence}, vk.True, 0) == vk.Success
}

// AcquireLastSubmitSemaphore returns and clears the binary semaphore signaled
// by the most recent Submit, so the caller (swapchain Present) can wait on
// it exactly once. Grounded on vulkanClasses.cpp:562-565.
func (cp *CommandPool) AcquireLastSubmitSemaphore() vk.Semaphore {
	s := cp.lastSubmitSemaphore
	cp.lastSubmitSemaphore = vk.NullSemaphore
	return s
}

// GetNextSubmitHandle returns the handle that will be assigned to the
// buffer currently being recorded (or the last one acquired).
func (cp *CommandPool) GetNextSubmitHandle() SubmitHandle { return cp.nextSubmitHandle }

// AcquireCommandBuffer picks a free slot, stamps its SubmitHandle with the
// current submission counter, and begins one-time-submit recording.
// Grounded on vulkanClasses.cpp:635-683.
func (cp *CommandPool) AcquireCommandBuffer() (vk.CommandBuffer, SubmitHandle) {
	if cp.freeCount == 0 {
		cp.TryResetCommandBuffers()
	}
	for cp.freeCount == 0 {
		cp.logger.Warn("waiting for a command buffer that is free to use")
		cp.TryResetCommandBuffers()
	}

	var s *slot
	for i := range cp.slots {
		if cp.slots[i].active == vk.NullCommandBuffer {
			s = &cp.slots[i]
			break
		}
	}
	vkutil.Assertf(s != nil, "no command buffer was available despite freeCount > 0")

	s.handle.SubmissionID = cp.submitCounter
	cp.freeCount--

	s.active = s.allocated
	s.isEncoding = true

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	vkutil.Check(vk.BeginCommandBuffer(s.active, &beginInfo), "vkBeginCommandBuffer")

	cp.nextSubmitHandle = s.handle
	return s.active, s.handle
}

// Submit ends recording, builds the wait/signal semaphore lists, and issues
// a single vkQueueSubmit2. Grounded on vulkanClasses.cpp:567-628.
func (cp *CommandPool) Submit(h SubmitHandle) SubmitHandle {
	s := &cp.slots[h.BufferIndex]
	vkutil.Assertf(s.isEncoding, "command buffer %d is not recording", h.BufferIndex)
	vkutil.Check(vk.EndCommandBuffer(s.active), "vkEndCommandBuffer")

	waits := make([]vk.SemaphoreSubmitInfo, 0, 2)
	if cp.pendingWait.semaphore != vk.NullSemaphore {
		waits = append(waits, vk.SemaphoreSubmitInfo{
			SType:     vk.StructureTypeSemaphoreSubmitInfo,
			Semaphore: cp.pendingWait.semaphore,
			StageMask: vk.PipelineStageFlags2(vk.PipelineStageAllCommandsBit),
		})
	}
	if cp.lastSubmitSemaphore != vk.NullSemaphore {
		waits = append(waits, vk.SemaphoreSubmitInfo{
			SType:     vk.StructureTypeSemaphoreSubmitInfo,
			Semaphore: cp.lastSubmitSemaphore,
			StageMask: vk.PipelineStageFlags2(vk.PipelineStageAllCommandsBit),
		})
	}

	signals := []vk.SemaphoreSubmitInfo{{
		SType:     vk.StructureTypeSemaphoreSubmitInfo,
		Semaphore: s.semaphore,
		StageMask: vk.PipelineStageFlags2(vk.PipelineStageAllCommandsBit),
	}}
	if cp.pendingSignal.semaphore != vk.NullSemaphore {
		signals = append(signals, vk.SemaphoreSubmitInfo{
			SType:     vk.StructureTypeSemaphoreSubmitInfo,
			Semaphore: cp.pendingSignal.semaphore,
			Value:     cp.pendingSignal.value,
			StageMask: vk.PipelineStageFlags2(vk.PipelineStageAllCommandsBit),
		})
	}

	bufferInfo := vk.CommandBufferSubmitInfo{
		SType:         vk.StructureTypeCommandBufferSubmitInfo,
		CommandBuffer: s.active,
	}

	submitInfo := vk.SubmitInfo2{
		SType:                    vk.StructureTypeSubmitInfo2,
		WaitSemaphoreInfoCount:   uint32(len(waits)),
		PWaitSemaphoreInfos:      waits,
		CommandBufferInfoCount:   1,
		PCommandBufferInfos:      []vk.CommandBufferSubmitInfo{bufferInfo},
		SignalSemaphoreInfoCount: uint32(len(signals)),
		PSignalSemaphoreInfos:    signals,
	}

	vkutil.Check(vk.QueueSubmit2(cp.queue, 1, []vk.SubmitInfo2{submitInfo}, s.fence), "vkQueueSubmit2")

	cp.lastSubmitSemaphore = s.semaphore
	cp.lastSubmitHandle = s.handle
	cp.pendingWait = waitDescriptor{}
	cp.pendingSignal = signalDescriptor{}

	s.isEncoding = false
	cp.submitCounter = nextSubmitCounter(cp.submitCounter)

	return cp.lastSubmitHandle
}

// nextSubmitCounter advances a submission counter, skipping the value 0 on
// wraparound (spec.md §8, "On wrap of the submission counter, the value 0
// must be skipped").
func nextSubmitCounter(c uint32) uint32 {
	c++
	if c == 0 {
		c++
	}
	return c
}

// TryResetCommandBuffers polls every non-encoding, in-use slot's fence with
// a zero timeout and reclaims any that have completed. Grounded on
// vulkanClasses.cpp:685-708.
func (cp *CommandPool) TryResetCommandBuffers() {
	for i := range cp.slots {
		s := &cp.slots[i]
		if s.active == vk.NullCommandBuffer || s.isEncoding {
			continue
		}

		result := vk.WaitForFences(cp.device, 1, []vk.Fence{s.fence}, vk.True, 0)
		switch result {
		case vk.Success:
			vkutil.Check(vk.ResetCommandBuffer(s.active, vk.CommandBufferResetFlags(0)), "vkResetCommandBuffer")
			vkutil.Check(vk.ResetFences(cp.device, 1, []vk.Fence{s.fence}), "vkResetFences")
			s.active = vk.NullCommandBuffer
			cp.freeCount++
		case vk.Timeout:
			// still in flight
		default:
			vkutil.Check(result, "vkWaitForFences")
		}
	}
}
