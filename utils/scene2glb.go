package utils

import (
	"github.com/qmuntal/gltf"

	"github.com/harshalkoli/3d-sphere/config"
	"github.com/harshalkoli/3d-sphere/scene"
	"github.com/harshalkoli/3d-sphere/volume"
)

// RunScene2GLB exports the scene described by cfg to a .glb file. The volume
// section of cfg sizes the texture when the scene uses the volume material.
func RunScene2GLB(cfg *config.Config, outPath string) error {
	var tex *volume.Volume
	if cfg.Scene.Material == "volume" {
		var err error
		tex, err = volume.Build(cfg.Volume.Width, cfg.Volume.Height, cfg.Volume.Depth)
		if err != nil {
			return err
		}
	}
	s, err := scene.New(cfg.Scene, tex)
	if err != nil {
		return err
	}
	doc, err := scene.Document(s)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, outPath)
}
