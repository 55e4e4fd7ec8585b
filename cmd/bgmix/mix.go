// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/bgmix"
	"github.com/ik5/bgmix/audio"
	"github.com/ik5/bgmix/config"
	"github.com/ik5/bgmix/formats"
	"github.com/ik5/bgmix/formats/wav"
	"github.com/ik5/bgmix/session"
)

type mixPaths struct {
	music  string
	input  string
	output string
}

type mixResult struct {
	State    session.State
	Frames   int64
	Samples  int64
	Duration time.Duration
	Output   string
}

func newMixCommand(a *app) *cobra.Command {
	var p mixPaths

	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Mix a music file under a microphone recording",
		Example: `  bgmix mix --music bed.mp3 --input voice.wav --output mixed.wav
  bgmix mix --music bed.flac --input voice.wav --output mixed.wav --lowpass --cutoff 200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := runMix(ctx, a.cfg, a.log, p)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), res)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&p.music, "music", "m", "", "background music file")
	f.StringVarP(&p.input, "input", "i", "", "microphone recording")
	f.StringVarP(&p.output, "output", "o", "", "output WAV file")
	f.Int("frame-size", 480, "samples per channel in each processed frame")
	f.Bool("lowpass", false, "smooth the mix with a single-pole low-pass filter")
	f.Float64("cutoff", audio.DefaultCutoff, "low-pass cutoff frequency in Hz")
	f.Bool("mono", false, "downmix the music to one channel")
	f.Bool("resample", true, "resample the music to the microphone rate")

	_ = cmd.MarkFlagRequired("music")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// runMix streams p.input through a session into p.output. Cancelling ctx
// aborts the session; whatever was mixed so far stays in the output file.
func runMix(ctx context.Context, cfg *config.Config, logger *slog.Logger, p mixPaths) (*mixResult, error) {
	reg := formats.NewRegistry()

	dec, err := reg.ForPath(p.input)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(p.input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.input, err)
	}
	defer src.Close()

	reader, err := audio.NewFrameReader(src, cfg.Frame.Size)
	if err != nil {
		return nil, err
	}

	var loadOpts []bgmix.LoadOption
	if cfg.Track.Mono {
		loadOpts = append(loadOpts, bgmix.WithMono())
	}
	if cfg.Track.Resample {
		loadOpts = append(loadOpts, bgmix.WithSampleRate(src.SampleRate()))
	}

	track, err := bgmix.DecodeTrackFile(reg, p.music, loadOpts...)
	if err != nil {
		return nil, err
	}

	logger.Info("music loaded",
		"file", p.music,
		"channels", track.NumChannels(),
		"duration", track.Duration(),
	)

	sessOpts := []session.Option{session.WithLogger(logger)}
	if cfg.LowPass.Enabled {
		sessOpts = append(sessOpts, session.WithLowPass(cfg.LowPass.Cutoff))
	}

	s, err := session.New(sessOpts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	sink, err := wav.Create(p.output, src.SampleRate(), src.Channels())
	if err != nil {
		return nil, err
	}

	if err := s.SetBackgroundTrack(ctx, track); err != nil {
		sink.Abort(err)
		return nil, err
	}
	if err := s.Start(ctx, reader, sink); err != nil {
		sink.Abort(err)
		return nil, err
	}

	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(done)
		return s.Wait(context.WithoutCancel(gctx))
	})

	g.Go(func() error {
		select {
		case <-done:
			return nil
		case <-gctx.Done():
		}

		logger.Info("interrupted, aborting")
		if err := s.Abort(context.WithoutCancel(gctx)); err != nil && !errors.Is(err, session.ErrNotRunning) {
			return err
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &mixResult{
		State:    s.State(),
		Frames:   s.FramesProcessed(),
		Samples:  sink.Frames(),
		Duration: time.Duration(sink.Frames()) * time.Second / time.Duration(src.SampleRate()),
		Output:   p.output,
	}, nil
}

func printSummary(w io.Writer, r *mixResult) {
	status := color.New(color.FgGreen, color.Bold)
	if r.State == session.Aborted {
		status = color.New(color.FgYellow, color.Bold)
	}

	status.Fprintf(w, "%s", r.State)
	fmt.Fprintf(w, ": %d frames, %s of audio written to %s\n",
		r.Frames, r.Duration.Round(time.Millisecond), color.CyanString(r.Output))
}
