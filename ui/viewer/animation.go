package viewer

import (
	"github.com/pkg/errors"
	"image"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/logger"
	"vincit.fi/image-viewer/common/loop"
)

// Player steps through the frames of an animation on the loop. The frame
// source is forward-only so seeking backwards rewinds to frame 0 first.
type Player struct {
	loop    *loop.Loop
	sender  api.Sender
	source  apitype.FrameSource
	timer   *loop.Timer
	looping bool
	onFrame func(frame image.Image)
}

func NewPlayer(l *loop.Loop, sender api.Sender, onFrame func(image.Image)) *Player {
	return &Player{
		loop:    l,
		sender:  sender,
		looping: true,
		onFrame: onFrame,
	}
}

// SetSource replaces the animation and shows its first frame. Playback is
// not started.
func (s *Player) SetSource(source apitype.FrameSource) bool {
	s.Clear()
	if source == nil || source.FrameCount() == 0 {
		return false
	}
	if !source.JumpToFrame(0) {
		logger.Error.Printf("Could not rewind animation: %s", source.LastError())
		return false
	}
	s.source = source
	s.sender.SendCommandToTopic(api.AnimationDuration, &api.AnimationDurationCommand{FrameCount: source.FrameCount()})
	s.sender.SendCommandToTopic(api.FrameChanged, &api.FrameChangedCommand{Frame: 0})
	return true
}

func (s *Player) Clear() {
	s.Stop()
	s.source = nil
}

func (s *Player) Source() apitype.FrameSource {
	return s.source
}

func (s *Player) IsPlaying() bool {
	return s.timer != nil && s.timer.Active()
}

func (s *Player) Start() {
	if s.source == nil || s.source.FrameCount() < 2 {
		return
	}
	s.Stop()
	s.sender.SendCommandToTopic(api.AnimationPaused, &api.AnimationPausedCommand{Paused: false})
	s.timer = s.loop.AfterFunc(s.source.NextFrameDelay(), s.tick)
}

func (s *Player) Stop() {
	if s.source == nil {
		return
	}
	s.sender.SendCommandToTopic(api.AnimationPaused, &api.AnimationPausedCommand{Paused: true})
	s.stopTimer()
}

func (s *Player) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Player) PauseResume() {
	if s.source == nil {
		return
	}
	if s.IsPlaying() {
		s.Stop()
	} else {
		s.Start()
	}
}

func (s *Player) Looping() bool {
	return s.looping
}

// SetLoop restarts playback when looping is turned back on.
func (s *Player) SetLoop(looping bool) {
	if s.source != nil && looping && s.looping != looping {
		s.Start()
	}
	s.looping = looping
}

func (s *Player) tick() {
	s.timer = nil
	if s.source == nil {
		return
	}
	if s.source.CurrentFrameNumber() == s.source.FrameCount()-1 {
		if !s.looping {
			s.sender.SendCommandToTopic(api.AnimationPaused, &api.AnimationPausedCommand{Paused: true})
			s.sender.SendToTopic(api.PlaybackFinished)
			return
		}
		if !s.source.JumpToFrame(0) {
			s.fail()
			return
		}
	} else if !s.source.JumpToNextFrame() {
		s.fail()
		return
	}
	s.frameChanged()
	s.timer = s.loop.AfterFunc(s.source.NextFrameDelay(), s.tick)
}

func (s *Player) fail() {
	err := s.source.LastError()
	if err == nil {
		err = errors.Errorf("could not decode frame %d", s.source.CurrentFrameNumber()+1)
	}
	logger.Error.Printf("Animation stopped: %s", err)
	s.Stop()
	s.sender.SendCommandToTopic(api.AnimationError, &api.AnimationErrorCommand{
		Frame: s.source.CurrentFrameNumber(),
		Err:   err,
	})
}

func (s *Player) frameChanged() {
	s.sender.SendCommandToTopic(api.FrameChanged, &api.FrameChangedCommand{Frame: s.source.CurrentFrameNumber()})
	s.onFrame(s.source.CurrentFrame())
}

// ShowFrame seeks to frame. The cost grows with the distance from frame 0
// when seeking backwards.
func (s *Player) ShowFrame(frame int) bool {
	if s.source == nil || frame < 0 || frame >= s.source.FrameCount() {
		return false
	}
	if s.source.CurrentFrameNumber() == frame {
		return true
	}
	ok := true
	if frame < s.source.CurrentFrameNumber() && !s.source.JumpToFrame(0) {
		ok = false
	}
	for ok && frame != s.source.CurrentFrameNumber() {
		ok = s.source.JumpToNextFrame()
	}
	if !ok {
		logger.Error.Printf("Seeking to frame %d failed: %s", frame, s.source.LastError())
		s.sender.SendCommandToTopic(api.AnimationError, &api.AnimationErrorCommand{
			Frame: frame,
			Err:   s.source.LastError(),
		})
	}
	s.frameChanged()
	return ok
}

func (s *Player) NextFrame() {
	if s.source == nil {
		return
	}
	if s.source.CurrentFrameNumber() == s.source.FrameCount()-1 {
		s.ShowFrame(0)
	} else {
		s.ShowFrame(s.source.CurrentFrameNumber() + 1)
	}
}

func (s *Player) PrevFrame() {
	if s.source == nil {
		return
	}
	if s.source.CurrentFrameNumber() == 0 {
		s.ShowFrame(s.source.FrameCount() - 1)
	} else {
		s.ShowFrame(s.source.CurrentFrameNumber() - 1)
	}
}
