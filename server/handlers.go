package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/harshalkoli/3d-sphere/api"
	"github.com/harshalkoli/3d-sphere/config"
	"github.com/harshalkoli/3d-sphere/scene"
	"github.com/harshalkoli/3d-sphere/volume"
)

const volumeCacheSize = 8

type dims struct{ w, h, d int }

// volumeCache holds built volumes. They are immutable once built, so cached
// ones are shared between requests.
type volumeCache struct {
	mu      sync.Mutex
	entries map[dims]*volume.Volume
}

func newVolumeCache() *volumeCache {
	return &volumeCache{entries: make(map[dims]*volume.Volume, volumeCacheSize)}
}

func (c *volumeCache) get(k dims) (*volume.Volume, error) {
	c.mu.Lock()
	v, ok := c.entries[k]
	c.mu.Unlock()
	if ok {
		return v, nil
	}
	v, err := volume.Build(k.w, k.h, k.d)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= volumeCacheSize {
		for old := range c.entries {
			delete(c.entries, old)
			break
		}
	}
	c.entries[k] = v
	return v, nil
}

func (c *volumeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (s *Server) requestVolume(r *http.Request) (*volume.Volume, error) {
	var k dims
	var err error
	if k.w, err = queryInt(r, "w", s.cfg.Volume.Width); err != nil {
		return nil, err
	}
	if k.h, err = queryInt(r, "h", s.cfg.Volume.Height); err != nil {
		return nil, err
	}
	if k.d, err = queryInt(r, "d", s.cfg.Volume.Depth); err != nil {
		return nil, err
	}
	return s.volumes.get(k)
}

func (s *Server) requestOptions(r *http.Request) (volume.Options, error) {
	vc := s.cfg.Volume
	q := r.URL.Query()
	if l := q.Get("layout"); l != "" {
		vc.Layout = l
	}
	if c := q.Get("comp"); c != "" {
		vc.Compression = c
	}
	opts, err := vc.Options()
	if err != nil {
		return opts, badRequest{err}
	}
	return opts, nil
}

func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (s *Server) HandlerVolume(w http.ResponseWriter, r *http.Request) {
	v, err := s.requestVolume(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	etag := fmt.Sprintf(`"%s-%d-%d-%t"`, formatChecksum(v.Checksum()), opts.Layout, opts.Compression, opts.Auto)
	if notModified(w, r, etag) {
		return
	}
	data, err := volume.Encode(v, opts)
	if err != nil {
		writeError(w, errors.Wrap(err, "encode volume"))
		return
	}
	writeFileHeaders(w, "application/octet-stream", fmt.Sprintf("volume_%dx%dx%d.vol3d", v.Width, v.Height, v.Depth))
	writeResult(w, data)
}

func (s *Server) HandlerVolumeRaw(w http.ResponseWriter, r *http.Request) {
	v, err := s.requestVolume(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if notModified(w, r, `"`+formatChecksum(v.Checksum())+`-raw"`) {
		return
	}
	h := w.Header()
	h.Set("X-Volume-Width", strconv.Itoa(v.Width))
	h.Set("X-Volume-Height", strconv.Itoa(v.Height))
	h.Set("X-Volume-Depth", strconv.Itoa(v.Depth))
	writeFileHeaders(w, "application/octet-stream", "")
	writeResult(w, v.Data)
}

func (s *Server) HandlerVolumeSlice(w http.ResponseWriter, r *http.Request) {
	format, err := api.ParseImageFormat(mux.Vars(r)["format"])
	if err != nil {
		writeError(w, badRequest{err})
		return
	}
	v, err := s.requestVolume(r)
	if err != nil {
		writeError(w, err)
		return
	}
	depth, err := queryFloat(r, "depth", volume.MidDepth)
	if err != nil {
		writeError(w, err)
		return
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	if size < 0 || size > 4096 {
		writeError(w, badRequest{errors.Errorf("size %d out of range [0, 4096]", size)})
		return
	}
	var buf bytes.Buffer
	if err := api.WriteSlice(&buf, v, depth, size, format); err != nil {
		writeError(w, err)
		return
	}
	writeFileHeaders(w, format.ContentType(), "")
	writeResult(w, buf.Bytes())
}

func (s *Server) HandlerSceneGLB(w http.ResponseWriter, r *http.Request) {
	cfg := s.cfg.Scene
	if m := r.URL.Query().Get("material"); m != "" {
		cfg.Material = m
	}
	var tex *volume.Volume
	if cfg.Material == "volume" {
		var err error
		if tex, err = s.requestVolume(r); err != nil {
			writeError(w, err)
			return
		}
	}
	sc, err := scene.New(cfg, tex)
	if err != nil {
		writeError(w, badRequest{err})
		return
	}
	var buf bytes.Buffer
	if err := scene.EncodeGLB(sc, &buf); err != nil {
		writeError(w, errors.Wrap(err, "encode scene"))
		return
	}
	writeFileHeaders(w, "model/gltf-binary", "scene.glb")
	writeResult(w, buf.Bytes())
}

func (s *Server) HandlerShader(w http.ResponseWriter, r *http.Request) {
	src, err := api.ShaderSource(mux.Vars(r)["stage"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeFileHeaders(w, "text/plain; charset=utf-8", "")
	writeResult(w, []byte(src))
}

// Config exposes the configuration the server was started with.
func (s *Server) Config() *config.Config { return s.cfg }
