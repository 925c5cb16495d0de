package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/config"
	"github.com/mogaika/keyframe_browser/scene"
	"github.com/mogaika/keyframe_browser/scriptlang"
)

func export(scriptPath, outPath string, opts scene.ExportOptions) error {
	data, err := ioutil.ReadFile(scriptPath)
	if err != nil {
		return errors.Wrapf(err, "Failed to read script")
	}
	if data, err = config.DecodeText(data); err != nil {
		return err
	}

	project := scene.NewProject()
	keys, err := scriptlang.ExecuteScript(project, data)
	if err != nil {
		return errors.Wrapf(err, "Failed to execute %q", scriptPath)
	}
	log.Printf("Loaded %d keys of %d objects", keys, project.Len())

	name := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))

	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "Failed to create output")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".glb":
		err = project.ExportGLTF(f, name, opts)
	case ".fbx":
		err = project.ExportFbx(f, name, opts)
	default:
		err = errors.Errorf("Unknown output format %q, use .glb or .fbx", filepath.Ext(outPath))
	}
	return err
}

func main() {
	var scriptPath, outPath, encoding string
	var fps float64
	var start uint
	flag.StringVar(&scriptPath, "script", "", "Keyframe script")
	flag.StringVar(&outPath, "out", "", "Output file, .glb or .fbx")
	flag.Float64Var(&fps, "fps", 30, "Frames per second")
	flag.UintVar(&start, "start", 0, "Frame used as rest pose")
	flag.StringVar(&encoding, "encoding", config.GetEncoding().String(), "Charset of script file")
	flag.Parse()

	if scriptPath == "" || outPath == "" {
		flag.PrintDefaults()
		return
	}

	if err := config.SetEncoding(encoding); err != nil {
		log.Fatal(err)
	}

	opts := scene.ExportOptions{FPS: fps, Start: animation.Frame(start)}
	if err := export(scriptPath, outPath, opts); err != nil {
		log.Fatal(err)
	}
	log.Printf("Exported %q", outPath)
}
