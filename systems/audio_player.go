package systems

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sirupsen/logrus"

	"ebiten-arpg/data"
	"ebiten-arpg/logging"
)

// SampleRate used by the audio context
const SampleRate = 44100

// EbitenAudio plays cues and background music through ebiten's audio context
type EbitenAudio struct {
	audioContext *audio.Context
	cues         map[string][]byte
	cueVolume    map[string]float64
	active       []*audio.Player
	music        []byte // Decoded PCM of the music loop
	musicVolume  float64
	bgmPlayer    *audio.Player
	volume       float64
	sampleRate   int
}

// NewEbitenAudio decodes every cue of def and its music. Sounds with a File
// are read from fsys; the rest are synthesized.
func NewEbitenAudio(def data.AudioDef, fsys fs.FS, dir string, volume float64) (*EbitenAudio, error) {
	a := &EbitenAudio{
		audioContext: audio.NewContext(SampleRate),
		cues:         make(map[string][]byte),
		cueVolume:    make(map[string]float64),
		sampleRate:   SampleRate,
	}
	a.SetVolume(volume)
	log := logging.For("audio")

	for name, cue := range def.Cues {
		vol := cue.Volume
		if vol <= 0 {
			vol = 1
		}
		a.cueVolume[name] = vol

		if cue.File == "" {
			a.cues[name] = synthTone(a.sampleRate, cue.Freq, cue.Duration, 1)
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, cue.File))
		if err != nil {
			return nil, fmt.Errorf("audio cue %s: %w", name, err)
		}
		pcm, err := a.decode(cue.File, bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("audio cue %s: %w", name, err)
		}
		a.cues[name] = pcm
	}

	if m := def.Music; m != nil {
		a.musicVolume = m.Volume
		if a.musicVolume <= 0 {
			a.musicVolume = 0.5
		}
		if m.File == "" {
			a.music = synthMelody(a.sampleRate, m.Notes, m.NoteLength, 1)
		} else {
			raw, err := fs.ReadFile(fsys, path.Join(dir, m.File))
			if err != nil {
				return nil, fmt.Errorf("music: %w", err)
			}
			if a.music, err = a.decode(m.File, bytes.NewReader(raw)); err != nil {
				return nil, fmt.Errorf("music: %w", err)
			}
		}
	}
	log.WithFields(logrus.Fields{"cues": len(a.cues), "music": len(a.music) > 0}).Info("audio ready")
	return a, nil
}

// decode turns a wav, mp3 or ogg file into 16-bit stereo PCM
func (a *EbitenAudio) decode(name string, r io.Reader) ([]byte, error) {
	stream, err := a.decodeStream(name, r)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

func (a *EbitenAudio) decodeStream(name string, r io.Reader) (io.ReadSeeker, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		return wav.DecodeWithSampleRate(a.sampleRate, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(a.sampleRate, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(a.sampleRate, r)
	}
	return nil, fmt.Errorf("unsupported audio format: %s", name)
}

// Play starts a cue. Unknown cues are ignored.
func (a *EbitenAudio) Play(cue string) {
	pcm, ok := a.cues[cue]
	if !ok {
		return
	}

	// Forget players that finished
	live := a.active[:0]
	for _, p := range a.active {
		if p.IsPlaying() {
			live = append(live, p)
		} else {
			p.Close()
		}
	}
	a.active = live

	p := a.audioContext.NewPlayerFromBytes(pcm)
	p.SetVolume(a.volume * a.cueVolume[cue])
	p.Play()
	a.active = append(a.active, p)
}

// PlayMusic starts the music loop, or resumes it where PauseMusic left it
func (a *EbitenAudio) PlayMusic() {
	if len(a.music) == 0 {
		return
	}
	if a.bgmPlayer == nil {
		loop := audio.NewInfiniteLoop(bytes.NewReader(a.music), int64(len(a.music)))
		player, err := a.audioContext.NewPlayer(loop)
		if err != nil {
			logging.For("audio").WithError(err).Warn("music player")
			return
		}
		a.bgmPlayer = player
		a.bgmPlayer.SetVolume(a.volume * a.musicVolume)
	}
	if !a.bgmPlayer.IsPlaying() {
		a.bgmPlayer.Play()
	}
}

// PauseMusic holds the music at its current position
func (a *EbitenAudio) PauseMusic() {
	if a.bgmPlayer != nil {
		a.bgmPlayer.Pause()
	}
}

// SetVolume sets the master volume, clamped to 0..1
func (a *EbitenAudio) SetVolume(volume float64) {
	a.volume = math.Max(0, math.Min(1, volume))
	if a.bgmPlayer != nil {
		a.bgmPlayer.SetVolume(a.volume * a.musicVolume)
	}
}

// Close stops the music and every cue still playing
func (a *EbitenAudio) Close() error {
	if a.bgmPlayer != nil {
		a.bgmPlayer.Close()
		a.bgmPlayer = nil
	}
	for _, p := range a.active {
		p.Close()
	}
	a.active = nil
	return nil
}

// synthMelody renders notes back to back; a zero frequency is a rest
func synthMelody(sampleRate int, notes []float64, length, volume float64) []byte {
	var out []byte
	for _, freq := range notes {
		if freq <= 0 {
			out = append(out, make([]byte, int(float64(sampleRate)*length)*4)...)
			continue
		}
		out = append(out, synthTone(sampleRate, freq, length, volume)...)
	}
	return out
}

// synthTone renders a sine tone with a linear fade-out as 16-bit little
// endian stereo PCM
func synthTone(sampleRate int, freq, duration, volume float64) []byte {
	n := int(float64(sampleRate) * duration)
	if n <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * volume * env
		s := uint16(int16(v * math.MaxInt16 * 0.8))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
	return out
}
