package scaler

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
)

type MockSender struct {
	api.Sender
	mock.Mock
	responses chan *apitype.ScalingResponse
}

func (s *MockSender) SendCommandToTopic(topic api.Topic, command apitype.Command) {
	s.Called(topic, command)
	s.responses <- command.(*apitype.ScalingResponse)
}

func newMockSender() *MockSender {
	sender := &MockSender{responses: make(chan *apitype.ScalingResponse, 10)}
	sender.On("SendCommandToTopic", api.ScalingFinished, mock.Anything).Return()
	return sender
}

func solid(width int, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestScale(t *testing.T) {
	src := solid(100, 50, color.RGBA{R: 200, A: 255})
	tests := []struct {
		name   string
		size   apitype.Size
		filter apitype.ScalingFilter
	}{
		{"nearest down", apitype.SizeOf(10, 5), apitype.FilterNearest},
		{"nearest up", apitype.SizeOf(300, 150), apitype.FilterNearest},
		{"bilinear down", apitype.SizeOf(40, 20), apitype.FilterBilinear},
		{"bilinear up", apitype.SizeOf(250, 125), apitype.FilterBilinear},
		{"bicubic down", apitype.SizeOf(33, 16), apitype.FilterBicubic},
		{"bicubic up", apitype.SizeOf(200, 100), apitype.FilterBicubic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := assert.New(t)
			scaled, err := Scale(context.Background(), src, tt.size, tt.filter)
			require.Nil(t, err)
			a.Equal(tt.size, apitype.SizeOfRectangle(scaled.Bounds()))
			a.Equal(image.Point{}, scaled.Rect.Min)
			a.NotSame(src, scaled)

			center := scaled.RGBAAt(tt.size.Width()/2, tt.size.Height()/2)
			a.InDelta(200, int(center.R), 2)
			a.Equal(uint8(255), center.A)
		})
	}
}

func TestScale_InvalidInput(t *testing.T) {
	a := assert.New(t)
	_, err := Scale(context.Background(), nil, apitype.SizeOf(10, 10), apitype.FilterBilinear)
	a.NotNil(err)
	_, err = Scale(context.Background(), solid(10, 10, color.RGBA{}), apitype.ZeroSize, apitype.FilterBilinear)
	a.NotNil(err)
}

func TestWithTransparencyGrid(t *testing.T) {
	a := assert.New(t)
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	img.SetRGBA(19, 19, color.RGBA{R: 255, A: 255})

	result := WithTransparencyGrid(img)

	a.Equal(color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}, result.RGBAAt(0, 0))
	a.Equal(color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}, result.RGBAAt(8, 0))
	a.Equal(color.RGBA{R: 255, A: 255}, result.RGBAAt(19, 19))
}

func TestScaler_RequestScaled(t *testing.T) {
	a := assert.New(t)
	sender := newMockSender()
	sut := NewScaler(sender)
	defer sut.Close()

	fingerprint := apitype.Fingerprint{Path: "image.png", Generation: 1}
	request := apitype.NewScalingRequest(fingerprint, solid(64, 64, color.RGBA{G: 255, A: 255}), apitype.SizeOf(16, 16), apitype.FilterBilinear, true)
	sut.RequestScaled(request)

	select {
	case response := <-sender.responses:
		a.Equal(request.Token, response.Token)
		a.True(fingerprint.Equals(response.Fingerprint))
		a.Equal(apitype.SizeOf(16, 16), response.Size())
	case <-time.After(5 * time.Second):
		a.Fail("no response")
	}
}

func TestScaler_LatestRequestWins(t *testing.T) {
	a := assert.New(t)
	sender := newMockSender()
	sut := NewScaler(sender)
	defer sut.Close()

	fingerprint := apitype.Fingerprint{Path: "image.png", Generation: 1}
	src := solid(2000, 2000, color.RGBA{B: 255, A: 255})
	var last *apitype.ScalingRequest
	for i := 1; i <= 5; i++ {
		last = apitype.NewScalingRequest(fingerprint, src, apitype.SizeOf(100*i, 100*i), apitype.FilterBilinear, false)
		sut.RequestScaled(last)
	}

	var received []*apitype.ScalingResponse
	timeout := time.After(10 * time.Second)
	for done := false; !done; {
		select {
		case response := <-sender.responses:
			received = append(received, response)
			done = response.Token == last.Token
		case <-timeout:
			done = true
		}
	}

	if a.NotEmpty(received) {
		a.Equal(last.Token, received[len(received)-1].Token)
		a.Equal(apitype.SizeOf(500, 500), received[len(received)-1].Size())
	}
}

func TestScaler_Close(t *testing.T) {
	sender := newMockSender()
	sut := NewScaler(sender)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sut.Close()
	}()
	go func() {
		defer wg.Done()
		sut.Close()
	}()
	wg.Wait()

	sut.RequestScaled(apitype.NewScalingRequest(apitype.NoFingerprint, solid(1, 1, color.RGBA{}), apitype.SizeOf(1, 1), apitype.FilterNearest, false))
	sender.AssertNotCalled(t, "SendCommandToTopic", mock.Anything, mock.Anything)
}
