package server

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/harshalkoli/3d-sphere/config"
)

// Server serves volumes, slices, the scene and its shaders to the browser page.
type Server struct {
	cfg     *config.Config
	volumes *volumeCache
}

func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg, volumes: newVolumeCache()}
}

// Handler returns the routed, logged handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/volume", s.HandlerVolume).Methods(http.MethodGet)
	r.HandleFunc("/api/volume/raw", s.HandlerVolumeRaw).Methods(http.MethodGet)
	r.HandleFunc("/api/volume/slice.{format}", s.HandlerVolumeSlice).Methods(http.MethodGet)
	r.HandleFunc("/api/scene.glb", s.HandlerSceneGLB).Methods(http.MethodGet)
	r.HandleFunc("/api/shader/{stage}", s.HandlerShader).Methods(http.MethodGet)
	r.HandleFunc("/ws/slices", s.HandlerSliceStream)

	if s.cfg.Server.WebPath != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.cfg.Server.WebPath)))
	}

	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r)
	return handlers.LoggingHandler(os.Stdout, h)
}

// ListenAndServe blocks serving on the configured address.
func (s *Server) ListenAndServe() error {
	log.Printf("[web] Starting server %v", s.cfg.Server.Addr)
	return http.ListenAndServe(s.cfg.Server.Addr, s.Handler())
}
