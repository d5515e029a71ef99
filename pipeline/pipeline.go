// Package pipeline wires the projection substrate, the event producer,
// and the source tree into the five-phase orchestration spec.md's
// orchestrator runs: build context, drain events, render, flush, close.
package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/protodata-io/protodata/producer"
	"github.com/protodata-io/protodata/projection"
	"github.com/protodata-io/protodata/reporter"
	"github.com/protodata-io/protodata/source"
)

// Pipeline holds one run's collaborators. Plugins and Renderers each run
// in registration order; renderer ordering is significant (later
// renderers observe earlier renderers' mutations), plugin ordering is
// not, since events are still delivered to every repository in C's
// canonical order regardless of which plugin registered it.
type Pipeline struct {
	Plugins   []Plugin
	Renderers []Renderer
	Request   *pluginpb.CodeGeneratorRequest
	SourceDir string

	// Log defaults to logrus.New() when nil, matching the teacher
	// plugin loader's optional *logrus.Logger field convention.
	Log *logrus.Logger
}

func (p *Pipeline) logger() *logrus.Logger {
	if p.Log != nil {
		return p.Log
	}
	return logrus.New()
}

// Run executes the five phases in strict order. Any failure aborts the
// remaining phases and is returned; partial filesystem writes from the
// flush phase, if reached, are never rolled back.
func (p *Pipeline) Run(ctx context.Context) error {
	log := p.logger()
	handler := reporter.NewHandler(nil)

	log.Debug("pipeline: build context")
	builder := &projection.Builder{}
	for _, plugin := range p.Plugins {
		plugin.FillIn(builder)
	}

	log.Debug("pipeline: drain events")
	seq, prod := producer.Produce(p.Request)
	queryCtx := builder.Drain(seq)
	if err := prod.Err(); err != nil {
		return reportAt(handler, reporter.SourcePos{File: p.requestFile()}, err)
	}

	log.Debug("pipeline: render")
	sources, err := source.FromDirectory(p.SourceDir)
	if err != nil {
		return reportAt(handler, reporter.SourcePos{File: p.SourceDir}, err)
	}
	for i, renderer := range p.Renderers {
		if err := ctx.Err(); err != nil {
			return reportAt(handler, reporter.SourcePos{Element: fmt.Sprintf("renderer[%d]", i)}, err)
		}
		if err := renderer.Render(queryCtx, sources); err != nil {
			pos := reporter.SourcePos{Element: fmt.Sprintf("renderer[%d]", i)}
			return reportAt(handler, pos, &ErrRenderFailed{Renderer: i, Err: err})
		}
	}

	log.Debug("pipeline: flush")
	if err := sources.Write(); err != nil {
		return reportAt(handler, reporter.SourcePos{File: p.SourceDir}, err)
	}

	log.Debug("pipeline: close")
	return handler.Error()
}

func (p *Pipeline) requestFile() string {
	if p.Request == nil || len(p.Request.GetFileToGenerate()) == 0 {
		return ""
	}
	return p.Request.GetFileToGenerate()[0]
}
