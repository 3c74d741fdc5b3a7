package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/harshalkoli/3d-sphere/api"
	"github.com/harshalkoli/3d-sphere/volume"
)

// RunVolume2Image renders the plane at depth (0..1) of a .vol3d file. The
// output format follows the file extension.
func RunVolume2Image(inPath, outPath string, depth float64, size int) error {
	format, err := api.ParseImageFormat(filepath.Ext(outPath))
	if err != nil {
		return err
	}
	v, _, err := volume.Load(inPath)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := api.WriteSlice(f, v, depth, size, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RunVolume2Slices writes every Z plane of a .vol3d file into outDir as
// <z>.png, in parallel.
func RunVolume2Slices(inPath, outDir string, size int) error {
	v, _, err := volume.Load(inPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	var wg sync.WaitGroup
	errCh := make(chan error, v.Depth)
	for z := 0; z < v.Depth; z++ {
		wg.Add(1)
		go func(z int) {
			defer wg.Done()
			// centre of plane z in texture space
			w := (float64(z) + 0.5) / float64(v.Depth)
			path := filepath.Join(outDir, fmt.Sprintf("%d.png", z))
			f, err := os.Create(path)
			if err != nil {
				errCh <- err
				return
			}
			if err := api.WriteSlice(f, v, w, size, api.FormatPNG); err != nil {
				f.Close()
				errCh <- fmt.Errorf("slice %d: %w", z, err)
				return
			}
			if err := f.Close(); err != nil {
				errCh <- err
			}
		}(z)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}
