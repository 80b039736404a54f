/*
DESCRIPTION
  Dvframedump is a diagnostic tool that parses a raw DV frame captured
  from tape and prints a short summary: for each channel, the frame's
  video error rate, the channel's front/back audio error rates, the
  number of Audio blocks with no pack, and track 0's absolute track
  number; then the number of voted VAUX and Subcode pack kinds.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements dvframedump, a command-line DV frame inspector.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/frame"
)

const (
	logPath      = "dvframedump.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func main() {
	pathPtr := flag.String("path", "", "Path to a raw DV frame file.")
	systemPtr := flag.String("system", "525-60", "Tape system: 525-60 or 625-50.")
	channelsPtr := flag.Int("channels", 1, "Number of DIF channels in the capture.")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *pathPtr == "" {
		l.Fatal("path is required")
	}

	system := dv.System525_60
	if *systemPtr == "625-50" {
		system = dv.System625_50
	}

	buf, err := os.ReadFile(*pathPtr)
	if err != nil {
		l.Fatal("could not read frame file", "error", err)
	}

	fi := dv.FileInfo{
		System:   system,
		Channels: *channelsPtr,
		Tracks:   system.Tracks(),
	}

	f, err := frame.ParseBinary(buf, fi)
	if err != nil {
		l.Fatal("could not parse frame", "error", err)
	}

	l.Info("parsed frame", "channels", len(f.Channels), "tracks", fi.Tracks)
	if msg := f.Validate(); msg != "" {
		l.Fatal("frame failed validation", "reason", msg)
	}
	summarize(f)
}

func summarize(f *frame.Frame) {
	for c, ch := range f.Channels {
		audioNoInfo := 0
		for _, track := range ch.Tracks {
			for _, a := range track.Audio {
				if a != nil && a.Pack == nil {
					audioNoInfo++
				}
			}
		}
		fmt.Printf("channel %d: video error rate %.1f%%, audio error rate %.1f%%/%.1f%% (front/back), %d audio blocks with no pack\n",
			c, f.VideoErrorSummary*100,
			f.AudioErrorSummary[c][0]*100, f.AudioErrorSummary[c][1]*100,
			audioNoInfo)
		if n := f.TrackNumbers[c][0]; n != nil {
			fmt.Printf("channel %d: track 0 absolute track number %d\n", c, *n)
		}
	}
	fmt.Printf("frame: %d VAUX pack kinds voted, %d Subcode pack kinds voted\n",
		len(f.VAUXPacks), len(f.SubcodePacks))
}
