package scaler

import (
	"context"
	"sync"
	"time"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/logger"
)

// Scaler runs one scaling job at a time. A new request cancels the job in
// progress and replaces any request that hasn't been started yet, so only
// the latest request produces a response.
type Scaler struct {
	sender  api.Sender
	pending *apitype.ScalingRequest
	cancel  context.CancelFunc
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	mux     sync.Mutex

	api.Scaler
}

func NewScaler(sender api.Sender) *Scaler {
	s := &Scaler{
		sender: sender,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Scaler) RequestScaled(request *apitype.ScalingRequest) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		return
	}
	if s.pending != nil {
		logger.Trace.Printf("Replacing pending %s", s.pending)
	}
	s.pending = request
	if s.cancel != nil {
		s.cancel()
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scaler) Close() {
	s.mux.Lock()
	if s.closed {
		s.mux.Unlock()
		return
	}
	s.closed = true
	s.pending = nil
	if s.cancel != nil {
		s.cancel()
	}
	close(s.wake)
	s.mux.Unlock()
	<-s.done
	logger.Debug.Printf("Scaler closed")
}

func (s *Scaler) run() {
	defer close(s.done)
	for range s.wake {
		request, ctx := s.takePending()
		if request == nil {
			continue
		}
		s.process(ctx, request)
	}
}

func (s *Scaler) takePending() (*apitype.ScalingRequest, context.Context) {
	s.mux.Lock()
	defer s.mux.Unlock()
	request := s.pending
	s.pending = nil
	if request == nil || s.closed {
		return nil, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	return request, ctx
}

func (s *Scaler) process(ctx context.Context, request *apitype.ScalingRequest) {
	startTime := time.Now()
	scaled, err := Scale(ctx, request.Source, request.Size, request.Filter)
	if err == nil && request.TransparencyGrid {
		scaled = WithTransparencyGrid(scaled)
	}

	s.mux.Lock()
	superseded := ctx.Err() != nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mux.Unlock()

	if superseded {
		logger.Trace.Printf("Dropped superseded %s", request)
		return
	}
	if err != nil {
		logger.Error.Printf("Scaling %s failed: %s", request, err)
		return
	}
	if logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Scaled %s in %s", request, time.Since(startTime))
	}
	s.sender.SendCommandToTopic(api.ScalingFinished, apitype.NewScalingResponse(request, scaled))
}
