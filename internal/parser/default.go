package parser

import (
	"crypto/sha256"
	"encoding/base64"
	"io/ioutil"
	"log"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/bmsplay/internal/audio"
	"git.lost.host/meutraa/bmsplay/internal/game"
)

// DefaultParser reads a BMS chart in two passes. Measure length
// directives may appear anywhere in the file, including after channel
// lines that reference the same measure, so every length has to be
// known before any token position can become an absolute beat.
type DefaultParser struct {
	Audio Loader // nil leaves every sample slot unbound
}

var (
	measureRe = regexp.MustCompile(`^#(\d{3})02:([.0-9]+)$`)
	commandRe = regexp.MustCompile(`^#(\w+) (.+)$`)
	keyedRe   = regexp.MustCompile(`^(\w+)(\w{2})$`)
	channelRe = regexp.MustCompile(`^#(\d{3})(\d{2}):(\w+)$`)
)

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read chart")
	}

	chart := game.NewChart()
	chart.BasePath = filepath.Dir(file)
	sum := sha256.Sum256(data)
	chart.Sum = base64.StdEncoding.EncodeToString(sum[:])

	lines := strings.Split(strings.ReplaceAll(string(data), "\r", ""), "\n")

	for _, line := range lines {
		p.parseMeasure(chart, line)
	}
	for _, line := range lines {
		p.parseCommand(chart, line)
	}

	return chart, nil
}

func (p *DefaultParser) parseMeasure(c *game.Chart, line string) {
	m := measureRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	measure, err := strconv.Atoi(m[1])
	if err != nil || measure >= game.MeasureCount {
		return
	}
	length, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return
	}
	c.Beats[measure] = length * 4
}

func (p *DefaultParser) parseCommand(c *game.Chart, line string) {
	m := commandRe.FindStringSubmatch(line)
	if m == nil {
		p.parseChannel(c, line)
		return
	}

	switch m[1] {
	case "TITLE":
		c.Title = m[2]
		return
	case "ARTIST":
		c.Artist = m[2]
		return
	case "GENRE":
		c.Genre = m[2]
		return
	case "PLAYLEVEL":
		c.Level = m[2]
		return
	case "LNOBJ":
		c.LnObj = m[2]
		return
	case "BPM":
		bpm, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return
		}
		c.Tempos = append(game.Sequence{{Kind: game.EventTempo, BPM: bpm}}, c.Tempos...)
		return
	}

	n := keyedRe.FindStringSubmatch(m[1])
	if n == nil {
		return
	}
	key, err := strconv.ParseInt(n[2], 36, 32)
	if err != nil {
		return
	}

	switch n[1] {
	case "BPM":
		if v, err := strconv.ParseFloat(m[2], 64); err == nil {
			c.BPMTable[key] = v
		}
	case "STOP":
		// STOP values are in 1/192nds of a whole note, 48 per beat.
		if v, err := strconv.ParseFloat(m[2], 64); err == nil {
			c.StopTable[key] = v / 48
		}
	case "WAV":
		p.bindSample(c, int(key), m[2])
	}
}

func (p *DefaultParser) bindSample(c *game.Chart, key int, name string) {
	if p.Audio == nil {
		return
	}
	file := audio.Resolve(c.BasePath, name)
	if file == "" {
		return
	}
	sample, err := p.Audio.Load(file)
	if err != nil {
		log.Println("unable to load sample", file, err)
		return
	}
	c.Samples[key] = sample
}

func (p *DefaultParser) parseChannel(c *game.Chart, line string) {
	m := channelRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	measure, err := strconv.Atoi(m[1])
	if err != nil || measure >= game.MeasureCount {
		return
	}
	channel, err := strconv.Atoi(m[2])
	if err != nil {
		return
	}

	switch {
	case channel == 1:
		p.placeTokens(c, &c.BGMs, measure, channel, m[3])
	case channel == 3 || channel == 8 || channel == 9:
		p.placeTokens(c, &c.Tempos, measure, channel, m[3])
	case (channel >= 11 && channel <= 16) || channel == 18 || channel == 19:
		p.placeTokens(c, &c.Lanes[laneIndex(channel)], measure, channel, m[3])
	case (channel >= 51 && channel <= 56) || channel == 58 || channel == 59:
		p.placeTokens(c, &c.Lanes[laneIndex(channel)], measure, channel, m[3])
	}
}

// Channel x6 is the turntable, played on the leftmost lane.
func laneIndex(channel int) int {
	if channel >= 50 {
		channel -= 40
	}
	switch {
	case channel == 16:
		return 0
	case channel <= 15:
		return channel - 10
	default:
		return channel - 12
	}
}

// placeTokens decodes one channel line. Each token covers an equal
// slice of the measure; "00" slices carry no event.
func (p *DefaultParser) placeTokens(c *game.Chart, seq *game.Sequence, measure, channel int, tokens string) {
	count := len(tokens) / 2
	if count == 0 {
		return
	}
	start := c.MeasureBeat(measure)

	i := 0
	for t := 0; t < count; t++ {
		token := tokens[t*2 : t*2+2]
		if token == "00" {
			continue
		}
		beat := start + float64(t)*c.Beats[measure]/float64(count)
		i = seq.Seek(i, beat)

		switch {
		case channel == 1:
			sample, err := strconv.ParseInt(token, 36, 32)
			if err != nil {
				continue
			}
			seq.Insert(i, game.Event{Beat: beat, Kind: game.EventCue, Sample: int(sample)})

		case channel == 3:
			bpm, err := strconv.ParseInt(token, 16, 32)
			if err != nil {
				continue
			}
			seq.Insert(i, game.Event{Beat: beat, Kind: game.EventTempo, BPM: float64(bpm)})

		case channel == 8:
			key, err := strconv.ParseInt(token, 36, 32)
			if err != nil {
				continue
			}
			seq.Insert(i, game.Event{Beat: beat, Kind: game.EventTempo, BPM: c.BPMTable[key]})

		case channel == 9:
			key, err := strconv.ParseInt(token, 36, 32)
			if err != nil {
				continue
			}
			seq.Insert(i, game.Event{Beat: beat, Kind: game.EventStop, Stop: c.StopTable[key]})

		case channel < 50:
			// The LNOBJ token turns the previous note in the lane
			// into a hold ending here.
			if i > 0 && token == c.LnObj {
				(*seq)[i-1].Kind = game.EventHold
				(*seq)[i-1].End = beat
				continue
			}
			sample, err := strconv.ParseInt(token, 36, 32)
			if err != nil {
				continue
			}
			seq.Insert(i, game.Event{Beat: beat, Kind: game.EventNote, Sample: int(sample)})
			c.TotalNotes++

		default:
			// 5x channels alternate hold head and tail.
			if i > 0 && (*seq)[i-1].Kind == game.EventHoldOpen {
				(*seq)[i-1].Kind = game.EventHold
				(*seq)[i-1].End = beat
				continue
			}
			sample, err := strconv.ParseInt(token, 36, 32)
			if err != nil {
				continue
			}
			seq.Insert(i, game.Event{Beat: beat, Kind: game.EventHoldOpen, Sample: int(sample)})
			c.TotalNotes++
		}
	}
}
