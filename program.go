package main

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/bmsplay/internal/config"
	"git.lost.host/meutraa/bmsplay/internal/game"
	"git.lost.host/meutraa/bmsplay/internal/input"
	"git.lost.host/meutraa/bmsplay/internal/render"
	"git.lost.host/meutraa/bmsplay/internal/score"
	"git.lost.host/meutraa/bmsplay/internal/session"
	"git.lost.host/meutraa/bmsplay/internal/theme"
)

type cell struct {
	x, y int
}

// Program owns the driver loop: one goroutine polling the clock,
// advancing the session, handling input at its own cadence, and
// rendering.
type Program struct {
	Renderer render.Renderer
	Theme    theme.Theme
	Input    *input.Handler

	Session *session.Session
	Chart   *game.Chart
	Score   *score.Score

	Speed float64

	startTime   time.Time
	lastHandled float64
	drawn       []cell
}

func (p *Program) Run() error {
	if err := p.Renderer.Init(); nil != err {
		return err
	}
	defer p.Renderer.Deinit()

	p.Speed = *config.Speed
	p.startTime = time.Now()

	for !p.Session.Quit {
		elapsed := time.Since(p.startTime).Seconds()
		p.Session.Update(elapsed)

		if elapsed-p.lastHandled >= config.InputPeriod.Seconds() {
			p.handle()
			p.lastHandled = elapsed
		}

		p.render()
		time.Sleep(*config.FramePeriod)
	}
	return nil
}

func (p *Program) handle() {
	p.Session.ShiftInputs()

	ev, ok := p.Input.Poll()
	if !ok {
		return
	}

	switch {
	case ev.Key == keyboard.KeyEsc || ev.Rune == 'q':
		p.Session.Quit = true
		return
	case ev.Key == keyboard.KeyCtrlL:
		p.Renderer.Clear()
		return
	case ev.Rune == '3':
		p.Speed = config.ClampSpeed(p.Speed - 0.25)
		return
	case ev.Rune == '4':
		p.Speed = config.ClampSpeed(p.Speed + 0.25)
		return
	}

	if p.Session.AutoPlay {
		return
	}
	if lane := p.Input.Lane(ev.Rune); lane >= 0 {
		p.Session.Press(lane)
		p.Session.OnInput(lane)
	}
}

// position maps a beat to a terminal row; the hit bar is the bottom row
// and a note LifetimeBeats ahead is at the top.
func (p *Program) position(beat float64, rows int) int {
	return int(float64(rows)*p.Speed*(p.Session.Beat-beat)/config.LifetimeBeats) + rows
}

func (p *Program) blit(y, x, lane int) {
	p.Renderer.Fill(y, x, p.Theme.RenderNote(lane))
	p.drawn = append(p.drawn, cell{x: x, y: y})
}

func (p *Program) drawHoldBody(y1, y2, lane, x int) {
	b := y2 + 1
	if y2 < 0 {
		b = 0
	}
	for j := b; j < y1; j++ {
		p.Renderer.Fill(j, x, p.Theme.RenderHoldBody(lane, j-y2))
		p.drawn = append(p.drawn, cell{x: x, y: j})
	}
}

func (p *Program) render() {
	w, h := p.Renderer.Size()

	for _, c := range p.drawn {
		p.Renderer.Fill(c.y, c.x, p.Theme.ClearCell())
	}
	p.drawn = p.drawn[:0]

	for i := range p.Session.Lanes {
		lane := p.Session.Lanes[i]
		seq := p.Chart.Lanes[i]
		endBeat := seq[lane.End].Beat
		x := i * p.Theme.LaneWidth()

		for n := lane.Begin; seq[n].Beat < endBeat; n++ {
			note := seq[n]
			y := p.position(note.Beat, h)
			if y < 0 {
				break
			}
			if y >= h {
				y = h - 1
			}

			if note.Kind == game.EventHold {
				y2 := p.position(note.End, h)
				p.drawHoldBody(y, y2, i, x)
				if y2 >= 0 {
					p.blit(y2, x, i)
				}
			}
			p.blit(y, x, i)
		}
	}

	p.Renderer.Fill(0, w-len(p.Chart.Genre), p.Chart.Genre)
	p.Renderer.Fill(1, w-len(p.Chart.Title), p.Chart.Title)
	p.Renderer.Fill(2, w-len(p.Chart.Artist), p.Chart.Artist)

	p.Renderer.Fill(4, w-16, fmt.Sprintf("Level : %7s", p.Chart.Level))
	p.Renderer.Fill(5, w-16, fmt.Sprintf("BPM   : %7.2f", p.Session.BPM))
	p.Renderer.Fill(6, w-16, fmt.Sprintf("Speed : %7.2f", p.Speed))

	hud := game.LaneCount * p.Theme.LaneWidth()
	for i, j := range config.Judgements {
		p.Renderer.Fill(h-6+i, hud, fmt.Sprintf("%s %6d", j.Name, p.Score.Judges[i]))
	}
	p.Renderer.Fill(h-1, hud, fmt.Sprintf("%6d", p.Score.Combo))

	p.Renderer.Flush()
}
