package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/triangle/internal/render"
)

const colorWriteAll = core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha

// renderPassInfo describes one subpass writing a single color attachment
// that is cleared on load and handed to presentation afterwards.
func renderPassInfo(format core1_0.Format) core1_0.RenderPassCreateInfo {
	color := core1_0.AttachmentDescription{
		Format:         format,
		Samples:        core1_0.Samples1,
		LoadOp:         core1_0.AttachmentLoadOpClear,
		StoreOp:        core1_0.AttachmentStoreOpStore,
		StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
		StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
		InitialLayout:  core1_0.ImageLayoutUndefined,
		FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
	}
	colorRef := core1_0.AttachmentReference{Attachment: 0, Layout: core1_0.ImageLayoutColorAttachmentOptimal}

	// Wait for the acquired image before writing color.
	acquire := core1_0.SubpassDependency{
		SrcSubpass:    core1_0.SubpassExternal,
		SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
		DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
		DstAccessMask: core1_0.AccessColorAttachmentWrite,
	}

	return core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{color},
		Subpasses: []core1_0.SubpassDescription{{
			PipelineBindPoint: core1_0.PipelineBindPointGraphics,
			ColorAttachments:  []core1_0.AttachmentReference{colorRef},
		}},
		SubpassDependencies: []core1_0.SubpassDependency{acquire},
	}
}

// vertexInputState mirrors render.Vertex: a vec2 position at location 0 and
// a vec3 color at location 1, interleaved in binding 0.
func vertexInputState() *core1_0.PipelineVertexInputStateCreateInfo {
	return &core1_0.PipelineVertexInputStateCreateInfo{
		VertexBindingDescriptions: []core1_0.VertexInputBindingDescription{
			{Binding: 0, Stride: render.VertexStride, InputRate: core1_0.VertexInputRateVertex},
		},
		VertexAttributeDescriptions: []core1_0.VertexInputAttributeDescription{
			{Binding: 0, Location: 0, Format: core1_0.FormatR32G32SignedFloat, Offset: render.PositionOffset},
			{Binding: 0, Location: 1, Format: core1_0.FormatR32G32B32SignedFloat, Offset: render.ColorOffset},
		},
	}
}

// pipelineInfo assembles the fixed-function state for drawing the mesh into
// the whole of extent. Stages, layout and render pass are filled in by the
// caller.
func pipelineInfo(extent core1_0.Extent2D) core1_0.GraphicsPipelineCreateInfo {
	return core1_0.GraphicsPipelineCreateInfo{
		VertexInputState: vertexInputState(),
		InputAssemblyState: &core1_0.PipelineInputAssemblyStateCreateInfo{
			Topology: core1_0.PrimitiveTopologyTriangleList,
		},
		ViewportState: &core1_0.PipelineViewportStateCreateInfo{
			Viewports: []core1_0.Viewport{{
				Width:    float32(extent.Width),
				Height:   float32(extent.Height),
				MaxDepth: 1,
			}},
			Scissors: []core1_0.Rect2D{{Extent: extent}},
		},
		// Culling off; the clip-space Y flip reverses winding.
		RasterizationState: &core1_0.PipelineRasterizationStateCreateInfo{
			PolygonMode: core1_0.PolygonModeFill,
			FrontFace:   core1_0.FrontFaceCounterClockwise,
			LineWidth:   1,
		},
		MultisampleState: &core1_0.PipelineMultisampleStateCreateInfo{
			RasterizationSamples: core1_0.Samples1,
			MinSampleShading:     1,
		},
		ColorBlendState: &core1_0.PipelineColorBlendStateCreateInfo{
			LogicOp: core1_0.LogicOpCopy,
			Attachments: []core1_0.PipelineColorBlendAttachmentState{
				{ColorWriteMask: colorWriteAll},
			},
		},
		BasePipelineIndex: -1,
	}
}

// memoryTypeIndex returns the first memory type allowed by filter that has
// every flag in required.
func memoryTypeIndex(types []core1_0.MemoryType, filter uint32, required core1_0.MemoryPropertyFlags) (int, bool) {
	for i, memoryType := range types {
		if filter&(1<<uint(i)) != 0 && memoryType.PropertyFlags&required == required {
			return i, true
		}
	}
	return 0, false
}
