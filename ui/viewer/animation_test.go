package viewer

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"image"
	"testing"
	"time"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common/loop"
)

var start = time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)

type MockSender struct {
	api.Sender
	mock.Mock
}

func (s *MockSender) SendToTopic(topic api.Topic) {
	s.Called(topic)
}

func (s *MockSender) SendCommandToTopic(topic api.Topic, command apitype.Command) {
	s.Called(topic, command)
}

func (s *MockSender) SendError(message string, err error) {
	s.Called(message, err)
}

func newMockSender() *MockSender {
	sender := &MockSender{}
	sender.On("SendToTopic", mock.Anything).Return()
	sender.On("SendCommandToTopic", mock.Anything, mock.Anything).Return()
	sender.On("SendError", mock.Anything, mock.Anything).Return()
	return sender
}

// commands returns every command sent to topic in order.
func (s *MockSender) commands(topic api.Topic) []apitype.Command {
	var commands []apitype.Command
	for _, call := range s.Calls {
		if call.Method == "SendCommandToTopic" && call.Arguments.Get(0) == topic {
			commands = append(commands, call.Arguments.Get(1).(apitype.Command))
		}
	}
	return commands
}

func (s *MockSender) topicCount(topic api.Topic) int {
	count := 0
	for _, call := range s.Calls {
		if call.Method == "SendToTopic" && call.Arguments.Get(0) == topic {
			count++
		}
	}
	return count
}

// recordingFrameSource is a forward-only source that logs every seek.
type recordingFrameSource struct {
	frames  []*image.RGBA
	delays  []time.Duration
	current int
	failAt  int
	lastErr error
	calls   []string
}

func newRecordingFrameSource(count int, delay time.Duration) *recordingFrameSource {
	source := &recordingFrameSource{failAt: -1}
	for i := 0; i < count; i++ {
		source.frames = append(source.frames, image.NewRGBA(image.Rect(0, 0, 40, 30)))
		source.delays = append(source.delays, delay)
	}
	return source
}

func (s *recordingFrameSource) FrameCount() int {
	return len(s.frames)
}

func (s *recordingFrameSource) CurrentFrameNumber() int {
	return s.current
}

func (s *recordingFrameSource) JumpToFrame(frame int) bool {
	s.calls = append(s.calls, fmt.Sprintf("jump:%d", frame))
	if frame != 0 {
		s.lastErr = errors.New("random access is not supported")
		return false
	}
	s.current = 0
	return true
}

func (s *recordingFrameSource) JumpToNextFrame() bool {
	s.calls = append(s.calls, "next")
	if s.current+1 >= len(s.frames) || s.current+1 == s.failAt {
		s.lastErr = errors.Errorf("no frame %d", s.current+1)
		return false
	}
	s.current++
	return true
}

func (s *recordingFrameSource) CurrentFrame() image.Image {
	return s.frames[s.current]
}

func (s *recordingFrameSource) NextFrameDelay() time.Duration {
	return s.delays[s.current]
}

func (s *recordingFrameSource) LastError() error {
	return s.lastErr
}

func (s *recordingFrameSource) Size() apitype.Size {
	return apitype.SizeOf(40, 30)
}

func newTestPlayer() (*Player, *MockSender, *loop.Loop, *[]image.Image) {
	sender := newMockSender()
	l := loop.New(loop.NewManualClock(start))
	var shown []image.Image
	player := NewPlayer(l, sender, func(frame image.Image) {
		shown = append(shown, frame)
	})
	return player, sender, l, &shown
}

func TestPlayer_PlaysWithFrameDelays(t *testing.T) {
	a := assert.New(t)
	sut, sender, l, shown := newTestPlayer()
	source := newRecordingFrameSource(3, 0)
	source.delays = []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 200 * time.Millisecond}

	a.True(sut.SetSource(source))
	sut.Start()
	a.True(sut.IsPlaying())

	l.Advance(99 * time.Millisecond)
	a.Equal(0, source.CurrentFrameNumber())
	l.Advance(1 * time.Millisecond)
	a.Equal(1, source.CurrentFrameNumber())
	l.Advance(50 * time.Millisecond)
	a.Equal(2, source.CurrentFrameNumber())
	l.Advance(200 * time.Millisecond)
	a.Equal(0, source.CurrentFrameNumber())

	a.Len(*shown, 3)
	frames := sender.commands(api.FrameChanged)
	a.Equal(&api.FrameChangedCommand{Frame: 0}, frames[0])
	a.Equal(&api.FrameChangedCommand{Frame: 0}, frames[len(frames)-1])
	a.Equal([]apitype.Command{&api.AnimationDurationCommand{FrameCount: 3}}, sender.commands(api.AnimationDuration))
}

func TestPlayer_StopsAtLastFrameWithoutLoop(t *testing.T) {
	a := assert.New(t)
	sut, sender, l, _ := newTestPlayer()
	source := newRecordingFrameSource(5, 10*time.Millisecond)
	sut.SetLoop(false)
	sut.SetSource(source)
	sut.Start()

	l.Advance(40 * time.Millisecond)
	a.Equal(4, source.CurrentFrameNumber())
	a.Equal(0, sender.topicCount(api.PlaybackFinished))

	l.Advance(10 * time.Millisecond)
	a.Equal(1, sender.topicCount(api.PlaybackFinished))
	a.Equal(4, source.CurrentFrameNumber())
	a.False(sut.IsPlaying())

	l.Advance(time.Second)
	a.Equal(1, sender.topicCount(api.PlaybackFinished))
	a.Equal(4, source.CurrentFrameNumber())
}

func TestPlayer_SingleFrameDoesNotPlay(t *testing.T) {
	a := assert.New(t)
	sut, _, _, _ := newTestPlayer()
	sut.SetSource(newRecordingFrameSource(1, 10*time.Millisecond))

	sut.Start()

	a.False(sut.IsPlaying())
}

func TestPlayer_DecodeErrorStopsPlayback(t *testing.T) {
	a := assert.New(t)
	sut, sender, l, _ := newTestPlayer()
	source := newRecordingFrameSource(5, 10*time.Millisecond)
	source.failAt = 2
	sut.SetSource(source)
	sut.Start()

	l.Advance(time.Second)

	a.False(sut.IsPlaying())
	a.Equal(1, source.CurrentFrameNumber())
	errs := sender.commands(api.AnimationError)
	if a.Len(errs, 1) {
		a.NotNil(errs[0].(*api.AnimationErrorCommand).Err)
	}
}

func TestPlayer_ShowFrameBackwardsRewindsToStart(t *testing.T) {
	a := assert.New(t)
	sut, _, _, shown := newTestPlayer()
	source := newRecordingFrameSource(6, 10*time.Millisecond)
	sut.SetSource(source)

	a.True(sut.ShowFrame(4))
	a.Equal(4, source.CurrentFrameNumber())
	source.calls = nil

	a.True(sut.ShowFrame(2))

	a.Equal(2, source.CurrentFrameNumber())
	a.Equal([]string{"jump:0", "next", "next"}, source.calls)
	a.Len(*shown, 2)
}

func TestPlayer_ShowFrameOutOfRange(t *testing.T) {
	a := assert.New(t)
	sut, _, _, _ := newTestPlayer()
	source := newRecordingFrameSource(3, 10*time.Millisecond)
	sut.SetSource(source)

	a.False(sut.ShowFrame(3))
	a.False(sut.ShowFrame(-1))
	a.Equal(0, source.CurrentFrameNumber())
}

func TestPlayer_NextAndPrevFrameWrap(t *testing.T) {
	a := assert.New(t)
	sut, _, _, _ := newTestPlayer()
	source := newRecordingFrameSource(3, 10*time.Millisecond)
	sut.SetSource(source)

	sut.PrevFrame()
	a.Equal(2, source.CurrentFrameNumber())
	sut.NextFrame()
	a.Equal(0, source.CurrentFrameNumber())
	sut.NextFrame()
	a.Equal(1, source.CurrentFrameNumber())
}

func TestPlayer_PauseResume(t *testing.T) {
	a := assert.New(t)
	sut, sender, l, _ := newTestPlayer()
	source := newRecordingFrameSource(3, 10*time.Millisecond)
	sut.SetSource(source)
	sut.Start()

	sut.PauseResume()
	a.False(sut.IsPlaying())
	l.Advance(time.Second)
	a.Equal(0, source.CurrentFrameNumber())

	sut.PauseResume()
	a.True(sut.IsPlaying())
	l.Advance(10 * time.Millisecond)
	a.Equal(1, source.CurrentFrameNumber())

	paused := sender.commands(api.AnimationPaused)
	a.Equal(&api.AnimationPausedCommand{Paused: false}, paused[len(paused)-1])
}

func TestPlayer_ClearStopsTimer(t *testing.T) {
	a := assert.New(t)
	sut, _, l, shown := newTestPlayer()
	sut.SetSource(newRecordingFrameSource(3, 10*time.Millisecond))
	sut.Start()

	sut.Clear()
	l.Advance(time.Second)

	a.Nil(sut.Source())
	a.Empty(*shown)
}
