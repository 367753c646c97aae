package model

import (
	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/model/ngram"
)

type ModelStatus int

const (
	ModelUnknown ModelStatus = iota
	ModelBuilding
	ModelReady
	ModelError
)

// ModelInitEvent reports progress of a background model build. The final
// event is ModelReady with Models set, or ModelError.
type ModelInitEvent struct {
	Name   string
	Status ModelStatus
	Step   int
	Total  int
	Models *ngram.Collection
	Err    error
}

// Percent is the completed share of the build, from 0 to 100.
func (e ModelInitEvent) Percent() float64 {
	if e.Status == ModelReady {
		return 100
	}
	if e.Total <= 0 {
		return 0
	}
	return float64(e.Step) / float64(e.Total) * 100
}

// Wait drains ch and returns the built collection.
func Wait(ch <-chan ModelInitEvent) (*ngram.Collection, error) {
	for ev := range ch {
		switch ev.Status {
		case ModelBuilding:
			logger.Debug("[%s] build %d/%d", ev.Name, ev.Step, ev.Total)
		case ModelReady:
			return ev.Models, nil
		case ModelError:
			return nil, ev.Err
		}
	}
	return nil, errClosed
}
