/*
DESCRIPTION
  Dvaudioextract is a diagnostic tool that de-interleaves the 16-bit
  linear PCM audio samples recorded in one channel of a raw DV frame,
  using the audio-shuffle table, and writes them out as a WAV file.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements dvaudioextract, a command-line DV audio
// de-interleaver.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/JohnstonJ/dv"
	"github.com/JohnstonJ/dv/frame"
	"github.com/JohnstonJ/dv/shuffle"
)

const wavFormat = 1

func main() {
	pathPtr := flag.String("path", "", "Path to a raw DV frame file.")
	outPtr := flag.String("out", "out.wav", "Path to write the extracted WAV file.")
	systemPtr := flag.String("system", "525-60", "Tape system: 525-60 or 625-50.")
	channelPtr := flag.Int("channel", 0, "DIF channel to extract audio from.")
	sampleRatePtr := flag.Int("rate", 48000, "Audio sample rate in Hz.")
	samplesPtr := flag.Int("samples", 1600, "Number of audio samples in the frame.")
	flag.Parse()

	if *pathPtr == "" {
		log.Fatal("path is required")
	}

	system := dv.System525_60
	if *systemPtr == "625-50" {
		system = dv.System625_50
	}

	buf, err := os.ReadFile(*pathPtr)
	if err != nil {
		log.Fatalf("could not read frame file: %v", err)
	}

	fi := dv.FileInfo{
		System:               system,
		Channels:             *channelPtr + 1,
		Tracks:               system.Tracks(),
		AudioSampleRate:      *sampleRatePtr,
		AudioSamplesPerFrame: *samplesPtr,
	}

	f, err := frame.ParseBinary(buf, fi)
	if err != nil {
		log.Fatalf("could not parse frame: %v", err)
	}

	samples, err := extractAudio(f, *channelPtr, fi)
	if err != nil {
		log.Fatalf("could not extract audio: %v", err)
	}

	out, err := os.Create(*outPtr)
	if err != nil {
		log.Fatalf("could not create output file: %v", err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, fi.AudioSampleRate, 16, 1, wavFormat)
	defer enc.Close()

	intBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: fi.AudioSampleRate},
		SourceBitDepth: 16,
		Data:           samples,
	}
	if err := enc.Write(intBuf); err != nil {
		log.Fatalf("could not write WAV samples: %v", err)
	}
}

// extractAudio reads fi.AudioSamplesPerFrame 16-bit linear PCM samples
// out of channel using the audio-shuffle table.
func extractAudio(f *frame.Frame, channel int, fi dv.FileInfo) ([]int, error) {
	table := shuffle.Build(fi.System)
	ch := f.Channels[channel]

	samples := make([]int, fi.AudioSamplesPerFrame)
	for n := 0; n < fi.AudioSamplesPerFrame; n++ {
		pos := table.Sample(n)
		a := ch.Tracks[pos.DIFSequence].Audio[pos.DIFBlock]
		if a == nil {
			continue
		}
		hi, lo := a.Data[pos.ByteOffset], a.Data[pos.ByteOffset+1]
		samples[n] = int(int16(uint16(hi)<<8 | uint16(lo)))
	}
	return samples, nil
}
