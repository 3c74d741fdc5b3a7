package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/harshalkoli/3d-sphere/volume"
)

// RunGenVolume builds a width x height x depth volume and writes it as a .vol3d file.
func RunGenVolume(width, height, depth int, outPath string, opts volume.Options) error {
	v, err := volume.Build(width, height, depth)
	if err != nil {
		return err
	}
	if err := volume.Save(v, outPath, opts); err != nil {
		return fmt.Errorf("failed to save volume: %w", err)
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf(".vol3d saved (%d bytes, checksum %016x)\n", fi.Size(), v.Checksum())
	} else {
		fmt.Println(".vol3d saved.")
	}
	return nil
}

// RunVolumeInfo dumps the header of a .vol3d file to w.
func RunVolumeInfo(inPath string, w io.Writer) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	hdr, payload, err := volume.ParseHeader(data)
	if err != nil {
		return err
	}
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Fdump(w, hdr)
	fmt.Fprintf(w, "layout=%s compression=%s payload=%d bytes raw=%d bytes\n",
		hdr.Layout(), hdr.Compression(), len(payload), uint64(hdr.W)*uint64(hdr.H)*uint64(hdr.D)*volume.Channels)
	return nil
}
