package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/config"
	"github.com/mogaika/keyframe_browser/scene"
	"github.com/mogaika/keyframe_browser/scriptlang"
	"github.com/mogaika/keyframe_browser/status"
	"github.com/mogaika/keyframe_browser/utils"
	"github.com/mogaika/keyframe_browser/webutils"
)

type ajaxObjectSummary struct {
	Id       uuid.UUID
	Name     string
	Channels map[string][]animation.Frame
}

type ajaxProject struct {
	Objects []ajaxObjectSummary
	Keyed   bool
	First   animation.Frame
	Last    animation.Frame
}

type ajaxChannel struct {
	Keyed bool
	Value *mgl32.Vec3     `json:",omitempty"`
	Keys  []animation.Key `json:",omitempty"`
}

type ajaxObject struct {
	Id       uuid.UUID
	Name     string
	Channels map[string]ajaxChannel
}

type ajaxObjectTransform struct {
	Name string
	scene.Transform
}

type ajaxScene struct {
	Frame   animation.Frame
	Playing bool
	Objects []ajaxObjectTransform
}

type ajaxPlayback struct {
	Frame   animation.Frame
	Playing bool
}

func summarizeObject(o *scene.Object) ajaxObjectSummary {
	summary := ajaxObjectSummary{
		Id:       o.Id,
		Name:     o.Name,
		Channels: make(map[string][]animation.Frame),
	}
	for _, c := range scene.Channels {
		// nil (null in json) for constant channel
		frames, _ := o.Channel(c).Frames()
		summary.Channels[c.String()] = frames
	}
	return summary
}

func describeObject(o *scene.Object) ajaxObject {
	result := ajaxObject{
		Id:       o.Id,
		Name:     o.Name,
		Channels: make(map[string]ajaxChannel),
	}
	for _, c := range scene.Channels {
		kf := o.Channel(c)
		ch := ajaxChannel{Keyed: kf.IsKeyed()}
		if ch.Keyed {
			ch.Keys = kf.Keys()
		} else {
			v := kf.At(0)
			ch.Value = &v
		}
		result.Channels[c.String()] = ch
	}
	return result
}

func parseFrame(param string) (animation.Frame, error) {
	f, err := strconv.ParseUint(param, 10, 0)
	if err != nil {
		return 0, errors.Errorf("frame '%s' is not non-negative integer", param)
	}
	return animation.Frame(f), nil
}

// object returns object by name from url, lock must be held
func (s *Server) object(w http.ResponseWriter, r *http.Request) *scene.Object {
	name := mux.Vars(r)["name"]
	o := s.project.ObjectByName(name)
	if o == nil {
		webutils.WriteErrorCode(w, http.StatusNotFound, errors.Errorf("Object %q not found", name))
	}
	return o
}

func (s *Server) HandlerAjaxProject(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := ajaxProject{Objects: make([]ajaxObjectSummary, 0, s.project.Len())}
	for _, o := range s.project.Objects() {
		result.Objects = append(result.Objects, summarizeObject(o))
	}
	result.First, result.Last, result.Keyed = s.project.FrameRange()
	webutils.WriteJson(w, result)
}

func (s *Server) HandlerAjaxObject(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if o := s.object(w, r); o != nil {
		webutils.WriteJson(w, describeObject(o))
	}
}

func (s *Server) HandlerAjaxObjectFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := parseFrame(mux.Vars(r)["frame"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if o := s.object(w, r); o != nil {
		webutils.WriteJson(w, o.TransformAt(frame))
	}
}

func (s *Server) writeScene(w http.ResponseWriter, frame animation.Frame) {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := ajaxScene{
		Frame:   frame,
		Playing: s.player.Playing(),
		Objects: make([]ajaxObjectTransform, 0, s.project.Len()),
	}
	for _, o := range s.project.Objects() {
		result.Objects = append(result.Objects, ajaxObjectTransform{
			Name:      o.Name,
			Transform: o.TransformAt(frame),
		})
	}
	webutils.WriteJson(w, result)
}

// HandlerAjaxScene returns transforms of all objects at current playback frame
func (s *Server) HandlerAjaxScene(w http.ResponseWriter, r *http.Request) {
	s.writeScene(w, s.player.Frame())
}

func (s *Server) HandlerAjaxSceneFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := parseFrame(mux.Vars(r)["frame"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	s.writeScene(w, frame)
}

func (s *Server) HandlerActionObject(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	o, err := s.project.AddObject(mux.Vars(r)["name"])
	if err != nil {
		webutils.WriteErrorCode(w, http.StatusConflict, err)
		return
	}
	status.Info("Created object %q", o.Name)
	webutils.WriteJson(w, summarizeObject(o))
}

func (s *Server) HandlerActionObjectKey(w http.ResponseWriter, r *http.Request) {
	channel, err := scene.ParseChannel(mux.Vars(r)["channel"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	frame, err := parseFrame(mux.Vars(r)["frame"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	var value []float32
	if err := webutils.ReadJson(r, &value); err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Expected [x,y,z] body"))
		return
	}
	if len(value) != 3 {
		webutils.WriteError(w, errors.Errorf("Expected [x,y,z] body, got %d numbers", len(value)))
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	o := s.object(w, r)
	if o == nil {
		return
	}
	o.Channel(channel).SetAt(frame, mgl32.Vec3{value[0], value[1], value[2]})
	status.Key(o.Name, channel.String(), frame)
	webutils.WriteJson(w, o.TransformAt(frame))
}

func (s *Server) HandlerActionPlayback(w http.ResponseWriter, r *http.Request) {
	switch action := mux.Vars(r)["action"]; action {
	case "play":
		s.player.Play()
	case "pause":
		s.player.Pause()
	case "step":
		s.player.Step()
	case "seek":
		frame, err := parseFrame(r.URL.Query().Get("frame"))
		if err != nil {
			webutils.WriteError(w, err)
			return
		}
		s.player.Seek(frame)
	default:
		webutils.WriteErrorCode(w, http.StatusNotFound, errors.Errorf("Unknown playback action %q", action))
		return
	}
	webutils.WriteJson(w, ajaxPlayback{Frame: s.player.Frame(), Playing: s.player.Playing()})
}

func (s *Server) HandlerUploadScript(w http.ResponseWriter, r *http.Request) {
	data, err := webutils.ReadFormFile(r, "data")
	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "File stream getting error"))
		return
	}
	if data, err = config.DecodeText(data); err != nil {
		webutils.WriteError(w, err)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	keys, err := scriptlang.ExecuteScript(s.project, data)
	if err != nil {
		status.Error("Script failed: %v", err)
		webutils.WriteError(w, err)
		return
	}
	status.Info("Script applied %d keys", keys)
	webutils.WriteJson(w, struct{ Keys int }{keys})
}

func (s *Server) HandlerDumpObject(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if o := s.object(w, r); o != nil {
		webutils.WriteFile(w, strings.NewReader(utils.SDump(o)), o.Name+".txt")
	}
}

func (s *Server) exportOptions() scene.ExportOptions {
	return scene.ExportOptions{FPS: s.cfg.Timeline.FPS, Start: s.cfg.Timeline.Start}
}

func (s *Server) HandlerExportGLTF(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var buf bytes.Buffer
	if err := s.project.ExportGLTF(&buf, s.cfg.Export.Name, s.exportOptions()); err != nil {
		webutils.WriteErrorCode(w, http.StatusInternalServerError, err)
		return
	}
	webutils.WriteFile(w, &buf, fmt.Sprintf("%s.glb", s.cfg.Export.Name))
}

func (s *Server) HandlerExportFbx(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var buf bytes.Buffer
	if err := s.project.ExportFbx(&buf, s.cfg.Export.Name, s.exportOptions()); err != nil {
		webutils.WriteErrorCode(w, http.StatusInternalServerError, err)
		return
	}
	webutils.WriteFile(w, &buf, fmt.Sprintf("%s.fbx", s.cfg.Export.Name))
}
