//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/harshalkoli/3d-sphere/api"
	"github.com/harshalkoli/3d-sphere/config"
	"github.com/harshalkoli/3d-sphere/scene"
	"github.com/harshalkoli/3d-sphere/volume"
)

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func dimArgs(args []js.Value) (w, h, d int, err error) {
	w, h, d = volume.DefaultSize, volume.DefaultSize, volume.DefaultSize
	if len(args) < 3 {
		return w, h, d, nil
	}
	for i := 0; i < 3; i++ {
		if args[i].Type() != js.TypeNumber {
			return 0, 0, 0, fmt.Errorf("argument %d must be a number, got %s", i, args[i].Type())
		}
	}
	return args[0].Int(), args[1].Int(), args[2].Int(), nil
}

// buildVolume(w, h, d) returns the raw RGBA texel buffer.
func buildVolume(this js.Value, args []js.Value) any {
	w, h, d, err := dimArgs(args)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.VolumeRaw(w, h, d)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

// encodeVolume(w, h, d, layout?, compression?) returns a .vol3d file.
func encodeVolume(this js.Value, args []js.Value) any {
	w, h, d, err := dimArgs(args)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	vc := config.Default().Volume
	if len(args) >= 4 {
		vc.Layout = args[3].String()
	}
	if len(args) >= 5 {
		vc.Compression = args[4].String()
	}
	opts, err := vc.Options()
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.BuildVolumeBytes(w, h, d, opts)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

// sceneGLB(material?) returns the default scene as a .glb.
func sceneGLB(this js.Value, args []js.Value) any {
	cfg := scene.DefaultConfig()
	var tex *volume.Volume
	if len(args) >= 1 {
		cfg.Material = args[0].String()
	}
	if cfg.Material == "volume" {
		var err error
		if tex, err = volume.Build(volume.DefaultSize, volume.DefaultSize, volume.DefaultSize); err != nil {
			return js.ValueOf(err.Error())
		}
	}
	out, err := api.SceneGLB(cfg, tex)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func shaderSource(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing shader stage")
	}
	src, err := api.ShaderSource(args[0].String())
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(src)
}

func main() {
	js.Global().Set("buildVolume", js.FuncOf(buildVolume))
	js.Global().Set("encodeVolume", js.FuncOf(encodeVolume))
	js.Global().Set("sceneGLB", js.FuncOf(sceneGLB))
	js.Global().Set("shaderSource", js.FuncOf(shaderSource))
	select {}
}
