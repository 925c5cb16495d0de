package main

import (
	"context"
	"flag"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/config"
	"github.com/mogaika/keyframe_browser/playback"
	"github.com/mogaika/keyframe_browser/scene"
	"github.com/mogaika/keyframe_browser/scriptlang"
	"github.com/mogaika/keyframe_browser/status"
	"github.com/mogaika/keyframe_browser/web"
)

func main() {
	var addr, configPath, scriptPath, webPath, encoding string
	var listEncodings bool
	flag.StringVar(&addr, "i", "", "Address of server, overrides config")
	flag.StringVar(&configPath, "config", "", "Path to yaml config")
	flag.StringVar(&scriptPath, "script", "", "Keyframe script to load on start")
	flag.StringVar(&webPath, "web", "", "Path to folder with web data, overrides config")
	flag.StringVar(&encoding, "encoding", "", "Charset of script files, overrides config")
	flag.BoolVar(&listEncodings, "encodings", false, "Print known charsets and exit")
	flag.Parse()

	if listEncodings {
		log.Printf("Encodings: %s", strings.Join(config.ListEncodings(), ", "))
		return
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if webPath != "" {
		cfg.Server.Web = webPath
	}
	if encoding != "" {
		cfg.Encoding = encoding
	}
	if err := config.SetEncoding(cfg.Encoding); err != nil {
		log.Fatal(err)
	}

	project := scene.NewProject()
	if scriptPath != "" {
		if err := loadScript(project, scriptPath); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	player := playback.NewPlayer(cfg.Timeline)
	player.OnFrame(func(f animation.Frame) { status.Frame(f) })
	go player.Run(ctx)

	if err := web.StartServer(ctx, web.NewServer(project, player, cfg)); err != nil {
		log.Fatal(err)
	}
	log.Printf("[main] Stopped")
}

func loadScript(project *scene.Project, path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	if data, err = config.DecodeText(data); err != nil {
		return err
	}
	keys, err := scriptlang.ExecuteScript(project, data)
	if err != nil {
		return err
	}
	log.Printf("[main] Loaded %d keys of %d objects from %q", keys, project.Len(), path)
	return nil
}
