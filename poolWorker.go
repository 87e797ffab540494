package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/frameloom/frameloom/phasecorr"
)

type PoolWorker struct {
	ctx         context.Context
	queue       *Queue
	config      *Config
	hub         *Hub
	waitGroup   *sync.WaitGroup
	workChannel chan Job
	report      *ReportSink
	engine      *phasecorr.Interpolator
}

var retryLimit int = 5

// NewPoolWorker wires the shared interpolation engine and the report
// sink. Failure to open the report sink is fatal to the caller: there
// is nowhere to record per-frame timings without it.
func NewPoolWorker(ctx context.Context, queue *Queue,
	config *Config, hub *Hub, waitGroup *sync.WaitGroup) (*PoolWorker, error) {
	engine, err := phasecorr.NewInterpolator(config.BlockSize, *config.HannWindow)
	if err != nil {
		return nil, err
	}

	report, err := OpenReport(config.ReportPath)
	if err != nil {
		return nil, err
	}

	return &PoolWorker{
		ctx:         ctx,
		queue:       queue,
		config:      config,
		hub:         hub,
		waitGroup:   waitGroup,
		workChannel: make(chan Job, config.Workers),
		report:      report,
		engine:      engine,
	}, nil
}

func (p *PoolWorker) RunDispatcher() {
	for i := 0; i < p.config.Workers; i++ {
		worker := NewWorker(i, CreateLogger(fmt.Sprintf("worker_%d", i)), p)
		go worker.start()
	}

	for {
		select {
		case <-p.ctx.Done():
			return
		default:
			job, ok := p.queue.Dequeue()
			if ok {
				p.workChannel <- job
			} else {
				time.Sleep(100 * time.Millisecond)
			}
		}
	}
}
