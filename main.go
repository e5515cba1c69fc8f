/*
Maquette is a direct-manipulation scene editor: resize handles with
world-fixed anchors, multi-object pivot drags, soft face snapping and
snapshot undo, over a JSON-persisted scene.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spatialworks/maquette/engine"
	"github.com/spatialworks/maquette/testbed"
)

func main() {
	tb := testbed.NewTestGame()

	eng, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = eng.Shutdown()
	}()

	if err := eng.Run(); err != nil {
		panic(err)
	}
}
