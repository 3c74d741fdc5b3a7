//go:build !(js && wasm)

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/harshalkoli/3d-sphere/api"
	"github.com/harshalkoli/3d-sphere/config"
	"github.com/harshalkoli/3d-sphere/server"
	"github.com/harshalkoli/3d-sphere/utils"
	"github.com/harshalkoli/3d-sphere/volume"
)

func usage() {
	fmt.Println("Usage: sphere3d <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  genvolume <w> <h> <d> output.vol3d [layout] [compression]  (build the gradient volume; layout linear|morton|auto, compression none|zlib|zstd)")
	fmt.Println("  volinfo input.vol3d                                       (print header and checksum)")
	fmt.Println("  vol2img input.vol3d output.png|tiff [depth] [size]        (render one depth slice, depth in [0,1], default 0.5)")
	fmt.Println("  vol2slices input.vol3d output_dir [size]                  (write every Z plane as <z>.png)")
	fmt.Println("  scene2glb output.glb [config.yaml]                        (export the sphere scene with its animations)")
	fmt.Println("  shader vertex|fragment                                    (print the volume material GLSL)")
	fmt.Println("  serve [config.yaml]                                       (serve the page and the volume API)")
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

func loadConfig(args []string) *config.Config {
	if len(args) == 0 {
		return config.Default()
	}
	cfg, err := config.Load(args[0])
	if err != nil {
		fail(err)
	}
	return cfg
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	if os.Getenv("SPHERE3D_DEBUG") != "" {
		volume.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	switch os.Args[1] {
	case "genvolume":
		if len(os.Args) < 6 || len(os.Args) > 8 {
			usage()
			os.Exit(1)
		}
		var w, h, d int
		for i, p := range []*int{&w, &h, &d} {
			if _, err := fmt.Sscan(os.Args[2+i], p); err != nil {
				fail(err)
			}
		}
		vc := config.Default().Volume
		if len(os.Args) > 6 {
			vc.Layout = os.Args[6]
		}
		if len(os.Args) > 7 {
			vc.Compression = os.Args[7]
		}
		opts, err := vc.Options()
		if err != nil {
			fail(err)
		}
		if err := utils.RunGenVolume(w, h, d, os.Args[5], opts); err != nil {
			fail(err)
		}
	case "volinfo":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunVolumeInfo(os.Args[2], os.Stdout); err != nil {
			fail(err)
		}
	case "vol2img":
		if len(os.Args) < 4 || len(os.Args) > 6 {
			usage()
			os.Exit(1)
		}
		depth := volume.MidDepth
		size := 0
		if len(os.Args) > 4 {
			if _, err := fmt.Sscan(os.Args[4], &depth); err != nil {
				fail(err)
			}
		}
		if len(os.Args) > 5 {
			if _, err := fmt.Sscan(os.Args[5], &size); err != nil {
				fail(err)
			}
		}
		if err := utils.RunVolume2Image(os.Args[2], os.Args[3], depth, size); err != nil {
			fail(err)
		}
	case "vol2slices":
		if len(os.Args) < 4 || len(os.Args) > 5 {
			usage()
			os.Exit(1)
		}
		size := 0
		if len(os.Args) == 5 {
			if _, err := fmt.Sscan(os.Args[4], &size); err != nil {
				fail(err)
			}
		}
		if err := utils.RunVolume2Slices(os.Args[2], os.Args[3], size); err != nil {
			fail(err)
		}
	case "scene2glb":
		if len(os.Args) < 3 || len(os.Args) > 4 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunScene2GLB(loadConfig(os.Args[3:]), os.Args[2]); err != nil {
			fail(err)
		}
	case "shader":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		src, err := api.ShaderSource(os.Args[2])
		if err != nil {
			fail(err)
		}
		fmt.Println(src)
		return
	case "serve":
		if len(os.Args) > 3 {
			usage()
			os.Exit(1)
		}
		if err := server.New(loadConfig(os.Args[2:])).ListenAndServe(); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
