package backend

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common"
)

func writePng(t *testing.T, width int, height int) string {
	path := filepath.Join(t.TempDir(), "image.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, image.NewNRGBA(image.Rect(0, 0, width, height))))
	return path
}

func TestServices_OpenDocument(t *testing.T) {
	a := assert.New(t)
	brokers := InitializeEventBrokers(10, nil)
	services := InitializeServices(brokers)
	defer services.Close()

	loaded := make(chan *api.DocumentLoadedCommand, 1)
	brokers.Broker.Subscribe(api.DocumentLoaded, func(command *api.DocumentLoadedCommand) {
		loaded <- command
	})
	path := writePng(t, 30, 20)
	brokers.Broker.SendCommandToTopic(api.OpenDocument, &api.OpenDocumentCommand{Path: path})

	select {
	case command := <-loaded:
		a.Equal(path, command.Document.Path())
		a.Equal(apitype.DocumentStatic, command.Document.Type())
		a.Equal(apitype.SizeOf(30, 20), command.Document.Size())
	case <-time.After(5 * time.Second):
		a.Fail("Document was not loaded")
	}
}

func TestServices_OpenDocumentReportsError(t *testing.T) {
	a := assert.New(t)
	brokers := InitializeEventBrokers(10, nil)
	services := InitializeServices(brokers)
	defer services.Close()

	errs := make(chan *api.ErrorCommand, 1)
	brokers.Broker.Subscribe(api.ShowError, func(command *api.ErrorCommand) {
		errs <- command
	})
	brokers.Broker.SendCommandToTopic(api.OpenDocument, &api.OpenDocumentCommand{Path: "does-not-exist.jpg"})

	select {
	case command := <-errs:
		a.Contains(command.Message, "does-not-exist.jpg")
	case <-time.After(5 * time.Second):
		a.Fail("Error was not reported")
	}
}

func TestServices_ScalingRequestIsAnswered(t *testing.T) {
	a := assert.New(t)
	brokers := InitializeEventBrokers(10, nil)
	services := InitializeServices(brokers)
	defer services.Close()

	responses := make(chan *apitype.ScalingResponse, 1)
	brokers.Broker.Subscribe(api.ScalingFinished, func(response *apitype.ScalingResponse) {
		responses <- response
	})
	fingerprint := apitype.Fingerprint{Path: "a.png", Modified: time.Now(), Generation: 1}
	request := apitype.NewScalingRequest(fingerprint, image.NewRGBA(image.Rect(0, 0, 100, 80)),
		apitype.SizeOf(50, 40), apitype.FilterBilinear, false)
	brokers.Broker.SendCommandToTopic(api.ScalingRequested, request)

	select {
	case response := <-responses:
		a.Equal(request.Token, response.Token)
		a.Equal(apitype.SizeOf(50, 40), apitype.SizeOfRectangle(response.Image.Bounds()))
	case <-time.After(5 * time.Second):
		a.Fail("Scaling was not finished")
	}
}

func TestInitializeStores_InMemory(t *testing.T) {
	a := assert.New(t)
	brokers := InitializeEventBrokers(10, nil)
	stores := InitializeStores(common.NewParams("INFO", "", true, ""), brokers)
	defer stores.Close()

	settings, err := stores.SettingsStore.Load()

	a.NoError(err)
	a.NotNil(settings)
}
