package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// DefaultPitch is the frequency at which one full row is played.
	DefaultPitch = 110.0
)

// Processor plays the newest heatmap row as a single-cycle wavetable, so
// the sound follows the fringe pattern as it evolves.
type Processor struct {
	Stream *portaudio.Stream

	Pitch  float64
	Volume float64

	mu    sync.Mutex
	table []float64

	phase       float64
	filterState [2]float64
	cutoff      float64

	Active bool
}

func NewProcessor() *Processor {
	return &Processor{
		Pitch:  DefaultPitch,
		Volume: 0.25,
		cutoff: 2000,
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	// Output only; duplex streams often fail on Linux when devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
		a.Stream = nil
	}
	if a.Active {
		portaudio.Terminate()
	}
	a.Active = false
}

// SetRow replaces the wavetable with a grayscale row. The row is centred
// and scaled to unit peak; a flat row produces silence.
func (a *Processor) SetRow(gray []uint8) {
	if len(gray) == 0 {
		return
	}

	mean := 0.0
	for _, v := range gray {
		mean += float64(v)
	}
	mean /= float64(len(gray))

	table := make([]float64, len(gray))
	peak := 0.0
	for i, v := range gray {
		table[i] = float64(v) - mean
		peak = math.Max(peak, math.Abs(table[i]))
	}
	if peak > 0 {
		for i := range table {
			table[i] /= peak
		}
	}

	a.mu.Lock()
	a.table = table
	a.mu.Unlock()
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// ProcessAudio is the portaudio output callback.
func (a *Processor) ProcessAudio(out [][]float32) {
	a.mu.Lock()
	table := a.table
	a.mu.Unlock()

	if len(out) == 0 {
		return
	}
	if len(table) == 0 {
		for _, ch := range out {
			for i := range ch {
				ch[i] = 0
			}
		}
		return
	}

	n := float64(len(table))
	inc := a.Pitch * n / SampleRate
	dt := 1.0 / float64(SampleRate)

	for i := range out[0] {
		idx := int(a.phase)
		frac := a.phase - float64(idx)
		s := table[idx%len(table)]*(1-frac) + table[(idx+1)%len(table)]*frac

		for c := range out {
			if c < len(a.filterState) {
				a.filterState[c] = lpf(s, a.cutoff, dt, a.filterState[c])
				out[c][i] = float32(a.filterState[c] * a.Volume)
			} else {
				out[c][i] = float32(s * a.Volume)
			}
		}

		a.phase += inc
		if a.phase >= n {
			a.phase = math.Mod(a.phase, n)
		}
	}
}
