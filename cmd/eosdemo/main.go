// Command eosdemo is a smoke-test / sample driver for the eos package: it
// stands up a GLFW window, brings up a Context against it, and runs the
// acquire/record/submit/present cycle for a handful of frames while
// exercising the scenarios spec.md §8 describes end to end (clean
// startup/shutdown, single-frame present, pacing under a fixed image
// count, deferred-destroy ordering, and shader-module lifecycle). It is not
// a renderer: every frame only transitions the swapchain image to the
// Present layout and presents it.
package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/qmuntal/gltf"
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos"
)

func init() {
	// GLFW must be called from the thread that created it.
	runtime.LockOSThread()
}

func main() {
	width := flag.Uint("width", 1280, "window width")
	height := flag.Uint("height", 720, "window height")
	frames := flag.Uint("frames", 120, "number of frames to render before exiting")
	validation := flag.Bool("validation", true, "enable Vulkan validation layers")
	gltfPath := flag.String("gltf", "", "optional glTF file whose buffer views are pushed through the deferred-destroy queue as a stress test")
	discrete := flag.Bool("discrete", true, "prefer a discrete GPU over an integrated one")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	eos.SetLogger(logger)

	if err := glfw.Init(); err != nil {
		logger.Error("glfw init failed", "error", err)
		os.Exit(1)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(int(*width), int(*height), "eosdemo", nil, nil)
	if err != nil {
		logger.Error("glfw window creation failed", "error", err)
		os.Exit(1)
	}
	defer window.Destroy()

	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		logger.Error("vulkan init failed", "error", err)
		os.Exit(1)
	}

	preferred := eos.HardwareDeviceIntegrated
	if *discrete {
		preferred = eos.HardwareDeviceDiscrete
	}

	ctx, err := eos.New(eos.ContextCreationDescription{
		ApplicationName:   "eosdemo",
		PreferredHardware: preferred,
		EnableValidation:  *validation,
		SwapchainWidth:    uint32(*width),
		SwapchainHeight:   uint32(*height),
		DesiredColorSpace: eos.ColorSpaceSRGBNonlinear,
		Logger:            logger,
		CreateSurface: func(instance vk.Instance) (vk.Surface, error) {
			raw, err := window.CreateWindowSurface(&instance, nil)
			if err != nil {
				return vk.NullSurface, err
			}
			return vk.SurfaceFromPointer(raw), nil
		},
	})
	if err != nil {
		logger.Error("context creation failed", "error", err)
		os.Exit(1)
	}
	defer ctx.Destroy()

	logger.Info("context ready", "hostVisibleSingleHeap", ctx.IsHostVisibleMemorySingleHeap())

	// S6: shader module lifecycle — create, release, gone.
	demoShaderModuleLifecycle(ctx, logger)

	// Fold a sample glTF's buffer-view byte ranges through the deferred
	// task queue as a stress test of Defer's closure-capture contract,
	// without ever touching the (out-of-scope) GPU allocator.
	if *gltfPath != "" {
		demoDeferredGLTFPayload(ctx, *gltfPath, logger)
	}

	runFrames(ctx, window, int(*frames), logger)
}

// demoShaderModuleLifecycle exercises S6: a shader module created from
// bytecode is destroyed eagerly once its Holder is released, not deferred.
func demoShaderModuleLifecycle(ctx *eos.Context, logger *slog.Logger) {
	bytecode := make([]uint32, 64) // 256 bytes of placeholder SPIR-V words
	holder := ctx.CreateShaderModule(bytecode, 0, "eosdemo placeholder shader")
	logger.Info("shader module created", "handle", holder.Handle())
	holder.Release()
	logger.Info("shader module released")
}

// demoDeferredGLTFPayload loads path and schedules one deferred no-op task
// per buffer view, each closure move-capturing that buffer view's raw bytes
// — the same closure-captures-driver-handles shape DestroyTexture uses, just
// with glTF geometry bytes standing in for a real GPU handle.
func demoDeferredGLTFPayload(ctx *eos.Context, path string, logger *slog.Logger) {
	doc, err := gltf.Open(path)
	if err != nil {
		logger.Warn("gltf load failed, skipping deferred payload stress test", "path", path, "error", err)
		return
	}

	for i, bv := range doc.BufferViews {
		buf := doc.Buffers[bv.Buffer]
		start, end := bv.ByteOffset, bv.ByteOffset+bv.ByteLength
		if int(end) > len(buf.Data) {
			continue
		}
		payload := buf.Data[start:end]
		idx := i
		ctx.Defer(eos.SubmitHandle{}, func() {
			logger.Debug("deferred gltf buffer view retired", "index", idx, "bytes", len(payload))
		})
	}
	logger.Info("scheduled deferred gltf payload", "path", path, "bufferViews", len(doc.BufferViews))
}

// runFrames drives the acquire/transition/submit/present loop for count
// frames, exercising S2 (single-frame present) and S3 (pacing) implicitly:
// the first numImages-1 acquires never block on the timeline semaphore,
// and every acquire thereafter waits for exactly the frame that reused the
// same image index to retire.
func runFrames(ctx *eos.Context, window *glfw.Window, count int, logger *slog.Logger) {
	start := time.Now()
	for frame := 0; frame < count && !window.ShouldClose(); frame++ {
		glfw.PollEvents()

		cb := ctx.AcquireCommandBuffer()
		tex := ctx.GetSwapchainTexture()

		cb.TransitionImage(tex, eos.Undefined, eos.Present)

		submitted := ctx.Submit(cb, tex)
		if frame%30 == 0 {
			logger.Info("frame submitted", "frame", frame, "bufferIndex", submitted.BufferIndex)
		}
	}
	logger.Info("frame loop finished", "frames", count, "elapsed", time.Since(start))
}
