package core

import "sync"

const AVG_COUNT uint8 = 30

// MetricsState tracks frame timing plus editor activity counters.
type MetricsState struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64

	DragSessions  uint64
	SnapHits      uint64
	HistoryPushes uint64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{}
	})
	return nil
}

func MetricsUpdate(frameElapsedTime float64) {
	if metricsState == nil {
		return
	}
	// Calculate frame ms average.
	frameMS := frameElapsedTime * 1000.0
	metricsState.MStimes[metricsState.FrameAVGCounter] = frameMS
	if metricsState.FrameAVGCounter == AVG_COUNT-1 {
		sum := 0.0
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += metricsState.MStimes[i]
		}
		metricsState.MSavg = sum / float64(AVG_COUNT)
	}
	metricsState.FrameAVGCounter++
	metricsState.FrameAVGCounter %= AVG_COUNT

	// Calculate frames per second.
	metricsState.AccumulatedFrameMS += frameMS
	if metricsState.AccumulatedFrameMS > 1000 {
		metricsState.FPS = float64(metricsState.Frames)
		metricsState.AccumulatedFrameMS -= 1000
		metricsState.Frames = 0
	}

	metricsState.Frames++
}

func MetricsCountDragSession() {
	if metricsState != nil {
		metricsState.DragSessions++
	}
}

func MetricsCountSnapHit() {
	if metricsState != nil {
		metricsState.SnapHits++
	}
}

func MetricsCountHistoryPush() {
	if metricsState != nil {
		metricsState.HistoryPushes++
	}
}

func MetricsFPS() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.FPS
}

func MetricsFrameTime() float64 {
	if metricsState == nil {
		return 0
	}
	return metricsState.MSavg
}

func MetricsEditor() (dragSessions, snapHits, historyPushes uint64) {
	if metricsState == nil {
		return 0, 0, 0
	}
	return metricsState.DragSessions, metricsState.SnapHits, metricsState.HistoryPushes
}
