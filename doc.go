// Package postfx provides a default post-processing pipeline for rendered
// scenes.
//
// # Overview
//
// A pipeline is a chain of image stages run after the scene is drawn:
// bloom, tone processing under HDR, and either anti-aliasing or a final
// merge. Its shape is controlled by a small Config value. Any change to the
// configuration rebuilds the whole chain: the old stages are disposed for
// every camera, the new ones are constructed from Plan, registered with the
// pipeline manager, linked for buffer sharing and re-attached.
//
// # Quick Start
//
//	dev := software.NewDevice()
//	mgr := manager.New()
//	p, err := postfx.New("default", true, postfx.Environment{
//	    Manager: mgr,
//	    Factory: software.NewFactory(dev),
//	    Device:  dev,
//	}, postfx.WithCameras(cam))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Dispose()
//
//	_ = p.SetBloomEnabled(true)
//	err = mgr.Render(cam, canvas, drawScene, screen)
//
// # Topologies
//
// The three booleans of a Config select one of eight Variants:
//
//	Minimal             finalMerge
//	AntiAlias           fxaa
//	Bloom               pass highlights blurX blurY copyBack finalMerge
//	BloomAntiAlias      pass highlights blurX blurY copyBack fxaa
//	HDR                 imageProcessing finalMerge
//	HDRAntiAlias        imageProcessing fxaa
//	HDRBloom            pass blurX blurY copyBack imageProcessing finalMerge
//	HDRBloomAntiAlias   pass blurX blurY copyBack imageProcessing fxaa
//
// The image-processing stage is constructed in every variant but executes
// only under HDR.
//
// # Buffer sharing
//
// Some stages render into a buffer owned by an earlier stage whose content
// is no longer needed. SharingLinks lists the links of a configuration.
//
// # Precision
//
// HDR is fixed at construction. Texture precision is chosen once from the
// device Capabilities: 32-bit float targets when supported, 16-bit float
// otherwise.
//
// # Persistence
//
// Serialize and Parse convert between a pipeline and a Record, which can
// be encoded as JSON or TOML.
package postfx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
