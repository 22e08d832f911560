package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/jpolvora/drawer/ui"
	"github.com/jpolvora/drawer/util/uiutil"
	"github.com/jpolvora/drawer/util/uiutil/widget"
)

type config struct {
	Gravity        string  `toml:"gravity"`
	TopOffset      int     `toml:"top_offset"`
	BottomOffset   int     `toml:"bottom_offset"`
	AllowSingleTap bool    `toml:"allow_single_tap"`
	AnimateOnClick bool    `toml:"animate_on_click"`
	Scale          float64 `toml:"scale"`
}

func defaultConfig() config {
	return config{
		Gravity:        "bottom",
		AllowSingleTap: true,
		AnimateOnClick: true,
		Scale:          1,
	}
}

func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

func main() {
	log.SetFlags(0)
	cfgPath := flag.String("config", "", "toml config file, live reloaded on change")
	flag.Parse()

	c := defaultConfig()
	if *cfgPath != "" {
		c2, err := loadConfig(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
		c = c2
	}

	root := &widget.ENode{}
	bui, err := uiutil.NewBasicUI("drawer demo", root)
	if err != nil {
		log.Fatal(err)
	}
	defer bui.Close()

	if err := buildDrawer(bui, root, c); err != nil {
		log.Fatal(err)
	}

	if *cfgPath != "" {
		if err := watchConfig(bui, root, *cfgPath); err != nil {
			log.Fatal(err)
		}
	}

	bui.EventLoop()
}

func buildDrawer(bui *uiutil.BasicUI, root *widget.ENode, c config) error {
	g, err := ui.ParseGravity(c.Gravity)
	if err != nil {
		return err
	}
	conf := &ui.DrawerConf{
		Gravity:        g,
		TopOffset:      c.TopOffset,
		BottomOffset:   c.BottomOffset,
		AllowSingleTap: c.AllowSingleTap,
		AnimateOnClick: c.AnimateOnClick,
		Scale:          c.Scale,
		PlaySound:      func() { log.Println("tap") },
	}

	handle := ui.NewDrawerHandle(bui)
	handle.Label = "drag"

	content := widget.NewRectangle(bui)
	content.Color = color.RGBA{40, 80, 160, 255}

	d := ui.NewDrawer(bui, conf, handle, content)
	d.Background = color.RGBA{235, 235, 235, 255}
	d.EvReg.Add(ui.DrawerOpenedEventId, func(interface{}) { log.Println("opened") })
	d.EvReg.Add(ui.DrawerClosedEventId, func(interface{}) { log.Println("closed") })

	root.RemoveAll()
	root.Append(d)
	return nil
}

// watchConfig rebuilds the drawer on the UI goroutine whenever the
// config file changes. The directory is watched because editors often
// replace the file instead of writing it in place.
func watchConfig(bui *uiutil.BasicUI, root *widget.ENode, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				c, err := loadConfig(abs)
				if err != nil {
					log.Println(err)
					continue
				}
				bui.RunOnUIThread(func() {
					if err := buildDrawer(bui, root, c); err != nil {
						log.Println(err)
					}
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Println(err)
			}
		}
	}()
	return nil
}
