package event

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
	"vincit.fi/image-viewer/api"
)

func TestBroker_ConnectToGuiUsesDispatcher(t *testing.T) {
	a := assert.New(t)
	dispatched := make(chan func(), 1)
	broker := InitBus(10, func(fn func()) {
		dispatched <- fn
	})

	received := make(chan *api.ScaleChangedCommand, 1)
	broker.ConnectToGui(api.ScaleChanged, func(command *api.ScaleChangedCommand) {
		received <- command
	})
	broker.SendCommandToTopic(api.ScaleChanged, &api.ScaleChangedCommand{Scale: 0.5})

	select {
	case fn := <-dispatched:
		a.Len(received, 0)
		fn()
	case <-time.After(5 * time.Second):
		a.Fail("Command was not dispatched")
		return
	}
	a.Equal(0.5, (<-received).Scale)
}

func TestBroker_SendError(t *testing.T) {
	a := assert.New(t)
	broker := InitBus(10, nil)

	received := make(chan *api.ErrorCommand, 1)
	broker.Subscribe(api.ShowError, func(command *api.ErrorCommand) {
		received <- command
	})
	broker.SendError("Could not load", errors.New("broken file"))

	select {
	case command := <-received:
		a.Equal("Could not load\nbroken file", command.Message)
	case <-time.After(5 * time.Second):
		a.Fail("Error was not sent")
	}
}
