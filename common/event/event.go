package event

import (
	"fmt"
	messagebus "github.com/vardius/message-bus"
	"reflect"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/logger"
)

// Dispatcher runs a function on the GUI goroutine.
type Dispatcher func(fn func())

type Broker struct {
	bus      messagebus.MessageBus
	dispatch Dispatcher

	api.Sender
}

func InitBus(queueSize int, dispatch Dispatcher) *Broker {
	return &Broker{
		bus:      messagebus.New(queueSize),
		dispatch: dispatch,
	}
}

func (s *Broker) Subscribe(topic api.Topic, fn interface{}) {
	err := s.bus.Subscribe(string(topic), fn)
	if err != nil {
		logger.Error.Panic("Could not subscribe")
	}
}

// ConnectToGui subscribes callback so that it is always called on the GUI
// goroutine instead of the bus worker.
func (s *Broker) ConnectToGui(topic api.Topic, callback interface{}) {
	cb := func(params ...interface{}) {
		sendFn := func() {
			args := make([]reflect.Value, 0, len(params))
			for _, param := range params {
				args = append(args, reflect.ValueOf(param))
			}
			if logger.IsLogLevel(logger.TRACE) {
				logger.Trace.Printf("Calling topic '%s' with: %s", topic, params)
			}
			reflect.ValueOf(callback).Call(args)
		}

		if s.dispatch != nil {
			s.dispatch(sendFn)
		} else {
			sendFn()
		}
	}
	err := s.bus.Subscribe(string(topic), cb)
	if err != nil {
		logger.Error.Panic("Could not subscribe")
	}
}

func (s *Broker) SendToTopic(topic api.Topic) {
	logger.Trace.Printf("Sending to '%s'", topic)
	s.bus.Publish(string(topic))
}

func (s *Broker) SendCommandToTopic(topic api.Topic, command apitype.Command) {
	if !command.IsThrottled() {
		logger.Trace.Printf("Sending command to '%s'", topic)
	}
	s.bus.Publish(string(topic), command)
}

func (s *Broker) SendError(message string, err error) {
	formattedMessage := ""
	if err != nil {
		formattedMessage = fmt.Sprintf("%s\n%s", message, err.Error())
	} else {
		formattedMessage = message
	}
	logger.Error.Printf("Error: %s", formattedMessage)
	s.SendCommandToTopic(api.ShowError, &api.ErrorCommand{Message: formattedMessage})
}

func (s *Broker) Close(topic api.Topic) {
	s.bus.Close(string(topic))
}
