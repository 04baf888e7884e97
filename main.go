package main

import (
	"fmt"
	"log"

	"git.lost.host/meutraa/bmsplay/internal/audio"
	"git.lost.host/meutraa/bmsplay/internal/config"
	"git.lost.host/meutraa/bmsplay/internal/input"
	"git.lost.host/meutraa/bmsplay/internal/parser"
	"git.lost.host/meutraa/bmsplay/internal/render"
	"git.lost.host/meutraa/bmsplay/internal/score"
	"git.lost.host/meutraa/bmsplay/internal/session"
	"git.lost.host/meutraa/bmsplay/internal/theme"
	"git.lost.host/meutraa/bmsplay/internal/timeline"
)

func main() {
	config.Init()
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	engine, err := audio.NewEngine()
	if nil != err {
		return err
	}

	var psr parser.Parser = &parser.DefaultParser{Audio: engine}
	chart, err := psr.Parse(*config.File)
	if nil != err {
		return err
	}

	result, err := score.New(chart.TotalNotes)
	if nil != err {
		return err
	}

	segments := timeline.Build(chart.Tempos)
	sess := session.New(chart, segments, engine, result, *config.AutoPlay)

	in, err := input.Open(*config.Binds)
	if nil != err {
		return err
	}
	defer func() {
		if err := in.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()

	var scorer score.Scorer = &score.DefaultScorer{Database: *config.Database}
	if err := scorer.Init(); nil != err {
		return err
	}
	defer scorer.Deinit()

	p := &Program{
		Renderer: &render.DefaultRenderer{},
		Theme:    &theme.DefaultTheme{},
		Input:    in,
		Session:  sess,
		Chart:    chart,
		Score:    result,
	}
	if err := p.Run(); nil != err {
		return err
	}

	if !sess.GameOver || *config.AutoPlay {
		return nil
	}

	fmt.Printf("%s  %d-%d-%d-%d:%d Score:%d\n",
		chart.Title,
		result.Judges[0], result.Judges[1], result.Judges[2], result.Judges[3],
		result.MaxCombo, result.Point)
	if best, ok := scorer.Best(chart); ok {
		fmt.Printf("Best: %d\n", best)
	}
	if err := scorer.Save(chart, result, p.Speed); nil != err {
		log.Println(err)
	}
	return nil
}
