// Package shaders holds the stage sources read at startup from the shader
// directory. The Vulkan stages are compiled to SPIR-V with glslc.
package shaders

//go:generate glslc triangle.vk.vert -o triangle.vk.vert.spv
//go:generate glslc triangle.vk.frag -o triangle.vk.frag.spv
