package web

import (
	"context"
	"log"
	"net/http"
	"os"
	"path"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/keyframe_browser/config"
	"github.com/mogaika/keyframe_browser/playback"
	"github.com/mogaika/keyframe_browser/scene"
	"github.com/mogaika/keyframe_browser/status"
)

// Server serves one project. Every access to project goes under lock,
// even reads update interpolation caches.
type Server struct {
	lock    sync.Mutex
	project *scene.Project
	player  *playback.Player
	cfg     *config.Config
}

func NewServer(project *scene.Project, player *playback.Player, cfg *config.Config) *Server {
	return &Server{project: project, player: player, cfg: cfg}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/project", s.HandlerAjaxProject).Methods("GET")
	r.HandleFunc("/json/object/{name}", s.HandlerAjaxObject).Methods("GET")
	r.HandleFunc("/json/object/{name}/{frame}", s.HandlerAjaxObjectFrame).Methods("GET")
	r.HandleFunc("/json/scene", s.HandlerAjaxScene).Methods("GET")
	r.HandleFunc("/json/scene/{frame}", s.HandlerAjaxSceneFrame).Methods("GET")
	r.HandleFunc("/action/object/{name}", s.HandlerActionObject).Methods("POST")
	r.HandleFunc("/action/object/{name}/{channel}/{frame}", s.HandlerActionObjectKey).Methods("POST")
	r.HandleFunc("/action/playback/{action}", s.HandlerActionPlayback).Methods("POST")
	r.HandleFunc("/upload/script", s.HandlerUploadScript).Methods("POST")
	r.HandleFunc("/dump/object/{name}", s.HandlerDumpObject).Methods("GET")
	r.HandleFunc("/export/gltf", s.HandlerExportGLTF).Methods("GET")
	r.HandleFunc("/export/fbx", s.HandlerExportFbx).Methods("GET")
	r.HandleFunc("/ws/status", status.ServeWs)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(s.cfg.Server.Web, "data"))))
	return r
}

func (s *Server) Handler() http.Handler {
	h := handlers.LoggingHandler(os.Stdout, s.Router())
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
}

// StartServer serves until ctx is done
func StartServer(ctx context.Context, s *Server) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[web] Shutdown error: %v", err)
		}
	}()

	log.Printf("[web] Starting server %v", srv.Addr)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
