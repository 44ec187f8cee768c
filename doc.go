// Package herofx is a retained-mode 3D animator for a decorative "hero"
// visual: a clay brick with embedded fibers, an orbiting ring cluster, a
// particle cloud, a double helix and a ball-and-stick molecule, animated once
// per display frame and steered by the pointer.
//
// # Quick start
//
// The animator draws through a [Rasterizer]. The ebitenfx and termfx
// packages provide a desktop window and a truecolor terminal backend:
//
//	anim, err := herofx.New(herofx.Rect{Width: 800, Height: 600}, raster,
//		herofx.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer anim.Close()
//
// The host then forwards pointer and resize events and runs one frame per
// display refresh:
//
//	anim.PointerMove(x, y)
//	anim.Resize(w, h)
//	anim.Tick(time.Now())
//
// # Scene graph
//
// Every object is a [Node] in a tree rooted at [Scene.Root]. Children
// inherit their parent's transform; world matrices are recomputed only for
// dirty subtrees. Nodes carry a [Mesh], a [ParticleCloud] or nothing, a
// [Material], and a [Motion] describing how the animator moves them.
//
// # Rendering
//
// [Scene.Compile] projects every primitive through a [Camera], shades it
// under the scene's ambient and point lights, applies fog and returns
// [RenderCommand]s sorted back to front. Backends only rasterize commands.
//
// # Configuration
//
// All tunables live in [Config], loaded from YAML with [LoadConfig]. Pass a
// [WatchConfig] channel to [WithConfigReloads] to apply edits while running.
package herofx
