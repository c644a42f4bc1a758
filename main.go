package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"thaitanloi365/go-face-obscure/faceobscuring"
)

func main() {
	var (
		configFile string
		cascade    string
		source     string
		dest       string
		workers    int
		quality    float64
		verbose    bool
	)
	flag.StringVar(&configFile, "config", "", "optional YAML config file")
	flag.StringVar(&cascade, "cascade", "./cascade/facefinder", "pigo face finder cascade")
	flag.StringVar(&source, "in", "", "source image")
	flag.StringVar(&dest, "out", "./out.jpg", "destination image; the extension selects the format")
	flag.IntVar(&workers, "workers", 0, "goroutines per image stage, 0 means one per CPU")
	flag.Float64Var(&quality, "quality", 0, "minimum detection score, 0 keeps the default")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if source == "" {
		logrus.Fatal("missing -in")
	}

	config := &faceobscuring.Config{}
	if configFile != "" {
		var err error
		config, err = faceobscuring.LoadConfig(configFile)
		if err != nil {
			logrus.WithError(err).Fatal("load config")
		}
	}
	if config.CascadeFile == "" || isFlagSet("cascade") {
		config.CascadeFile = cascade
	}
	if workers > 0 {
		config.Workers = workers
	}
	if quality > 0 {
		config.QualityThreshold = float32(quality)
	}

	faceObscurer, err := faceobscuring.New(config)
	if err != nil {
		logrus.WithError(err).Fatal("init face detector")
	}

	out, err := os.Create(dest)
	if err != nil {
		logrus.WithError(err).Fatal("create output")
	}
	defer out.Close()

	if err := faceObscurer.ObscureFaces(source, out); err != nil {
		out.Close()
		os.Remove(dest)
		logrus.WithError(err).Fatal("obscure faces")
	}

	logrus.WithFields(logrus.Fields{"in": source, "out": dest}).Info("faces obscured")
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
