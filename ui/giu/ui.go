package giu

import (
	"github.com/AllenDang/giu"
	"github.com/OpenDiablo2/dialog"
	"time"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/api/apitype"
	"vincit.fi/image-viewer/common"
	"vincit.fi/image-viewer/common/config"
	"vincit.fi/image-viewer/common/logger"
	"vincit.fi/image-viewer/common/loop"
	"vincit.fi/image-viewer/ui/giu/internal"
	"vincit.fi/image-viewer/ui/giu/internal/guiapi"
	"vincit.fi/image-viewer/ui/giu/widget"
	"vincit.fi/image-viewer/ui/viewer"
)

const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 768
	statusBarHeight     = 24
	noDocumentMessage   = "Press O to open a file"
)

type Ui struct {
	win           *giu.MasterWindow
	sender        api.Sender
	settingsStore api.SettingsStore
	loop          *loop.Loop
	pump          *loop.Pump
	viewer        *viewer.ImageViewer
	imageManager  *internal.ImageManager
	keyManager    *internal.KeyManager
	pointer       *widget.PointerState
	filePath      string
	currentPath   string
	paused        bool
	message       string

	api.Gui
}

func NewUi(params *common.Params, l *loop.Loop, broker api.Sender, settingsStore api.SettingsStore) *Ui {
	settings, err := settingsStore.Load()
	if err != nil {
		logger.Warn.Print("Could not load settings, using defaults ", err)
		settings = config.NewDefaultSettings()
	}

	gui := &Ui{
		win:           giu.NewMasterWindow("Image Viewer", defaultWindowWidth, defaultWindowHeight, 0),
		sender:        broker,
		settingsStore: settingsStore,
		loop:          l,
		pump:          loop.NewPump(l, giu.Update),
		viewer:        viewer.New(settings, broker, l, apitype.SizeOf(defaultWindowWidth, defaultWindowHeight-statusBarHeight)),
		imageManager:  internal.NewImageManager(l),
		keyManager:    internal.NewKeyManager(),
		pointer:       &widget.PointerState{},
		filePath:      params.FilePath(),
		message:       noDocumentMessage,
	}
	gui.viewer.SetOnChanged(giu.Update)
	gui.bindKeys()
	return gui
}

func (s *Ui) Viewer() *viewer.ImageViewer {
	return s.viewer
}

func (s *Ui) Run() {
	if s.filePath != "" {
		s.sender.SendCommandToTopic(api.OpenDocument, &api.OpenDocumentCommand{Path: s.filePath})
	}
	s.viewer.Show()
	s.win.Run(s.render)
	s.pump.Stop()
}

func (s *Ui) render() {
	renderStart := time.Now()
	s.pump.Run()

	modifiers := internal.ResolveModifiers()
	texture := s.imageManager.Texture(s.viewer.Surface())
	giu.SingleWindow().
		Layout(
			giu.Label(s.status().Label()),
			widget.ViewerImage(s.viewer, texture, s.pointer, modifiers),
			giu.PrepareMsgbox(),
		)
	s.keyManager.HandleKeys(modifiers)

	renderTime := time.Since(renderStart)
	if renderTime >= time.Millisecond && logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Rendered UI in %s", renderTime)
	} else if renderTime >= 10*time.Millisecond {
		logger.Debug.Printf("Rendered UI in %s", renderTime)
	}
}

func (s *Ui) status() *internal.Status {
	status := &internal.Status{
		Path:       s.currentPath,
		SourceSize: s.viewer.SourceSize(),
		Scale:      s.viewer.CurrentScale(),
		FitMode:    s.viewer.FitMode(),
		ViewLock:   s.viewer.ViewLock(),
		Paused:     s.paused,
		Message:    s.message,
	}
	if source := s.viewer.Player().Source(); source != nil {
		status.Frame = source.CurrentFrameNumber()
		status.FrameCount = source.FrameCount()
	}
	return status
}

func (s *Ui) bindKeys() {
	keys := s.keyManager
	keys.Bind("Zoom in", giu.Key('='), s.viewer.ZoomIn)
	keys.Bind("Zoom out", giu.Key('-'), s.viewer.ZoomOut)
	keys.Bind("Fit width", giu.Key('W'), s.viewer.SetFitWidth)
	keys.Bind("Fit window", giu.Key('F'), s.viewer.SetFitWindow)
	keys.Bind("Fit window", giu.KeyBackspace, s.viewer.SetFitWindow)
	keys.Bind("Original size", giu.Key('1'), s.viewer.SetFitOriginal)

	keys.Bind("Scroll up", giu.KeyUp, s.viewer.ScrollUp)
	keys.Bind("Scroll down", giu.KeyDown, s.viewer.ScrollDown)
	keys.Bind("Scroll left", giu.KeyLeft, s.viewer.ScrollLeft)
	keys.Bind("Scroll right", giu.KeyRight, s.viewer.ScrollRight)

	keys.Bind("Pause", giu.Key(' '), s.viewer.PauseResume)
	keys.Bind("Previous frame", giu.Key(','), s.viewer.PrevFrame)
	keys.Bind("Next frame", giu.Key('.'), s.viewer.NextFrame)
	keys.Bind("Loop playback", giu.Key('P'), func() {
		s.viewer.SetLoopPlayback(!s.viewer.Settings().LoopPlayback)
	})

	keys.Bind("Lock zoom", giu.Key('L'), s.viewer.ToggleLockZoom)
	keys.Bind("Lock view", giu.Key('K'), s.viewer.ToggleLockView)
	keys.Bind("Transparency grid", giu.Key('G'), s.viewer.ToggleTransparencyGrid)
	keys.Bind("Scaling filter", giu.Key('I'), s.nextScalingFilter)
	keys.Bind("Expand image", giu.Key('E'), func() {
		s.viewer.SetExpandImage(!s.viewer.Settings().ExpandImage)
	})

	keys.Bind("Open", giu.Key('O'), s.openFileChooser)
	keys.Bind("Close", giu.KeyEscape, s.closeDocument)
	keys.BindWithModifiers("Save settings", giu.Key('S'), guiapi.Modifiers{Control: true}, s.saveSettings)
}

func (s *Ui) nextScalingFilter() {
	filter := (s.viewer.ScalingFilter() + 1) % (apitype.FilterBicubic + 1)
	s.viewer.SetScalingFilter(filter)
	s.message = "filter " + filter.String()
}

func (s *Ui) saveSettings() {
	settings := s.viewer.Settings()
	settings.TransparencyGrid = s.viewer.TransparencyGridEnabled()
	settings.ScalingFilter = s.viewer.ScalingFilter()
	if err := s.settingsStore.Save(settings); err != nil {
		s.sender.SendError("Could not save settings", err)
		return
	}
	s.message = "settings saved"
}

// openFileChooser blocks so it is run outside of the render loop.
func (s *Ui) openFileChooser() {
	go func() {
		path, err := dialog.File().
			Filter("Images and videos", "jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp", "mp4", "webm", "mkv", "avi", "mov").
			Title("Open file").
			Load()
		if err == dialog.ErrCancelled {
			return
		} else if err != nil {
			s.sender.SendError("Could not open file chooser", err)
			return
		}
		s.sender.SendCommandToTopic(api.OpenDocument, &api.OpenDocumentCommand{Path: path})
	}()
}

func (s *Ui) closeDocument() {
	s.viewer.CloseImage()
	s.imageManager.Clear()
	s.currentPath = ""
	s.message = noDocumentMessage
}

func (s *Ui) DocumentLoaded(command *api.DocumentLoadedCommand) {
	document := command.Document
	logger.Debug.Printf("Displaying %s '%s'", document.Type(), document.Path())
	s.viewer.DisplayDocument(document)
	s.currentPath = document.Path()
	s.paused = false
	s.message = ""
}

func (s *Ui) ScalingFinished(response *apitype.ScalingResponse) {
	s.viewer.OnScalingFinished(response)
}

func (s *Ui) SettingsChanged(command *api.SettingsChangedCommand) {
	s.viewer.ReadSettings(command.Settings)
}

func (s *Ui) AnimationPaused(command *api.AnimationPausedCommand) {
	s.paused = command.Paused
}

func (s *Ui) DraggedOut(command *api.DraggedOutCommand) {
	logger.Info.Printf("Dragged out '%s'", command.Path)
	s.message = "dragged out"
}

func (s *Ui) AnimationError(command *api.AnimationErrorCommand) {
	s.sender.SendError("Could not decode animation frame", command.Err)
}

func (s *Ui) ShowError(command *api.ErrorCommand) {
	logger.Error.Printf("Error: %s", command.Message)
	giu.Msgbox("Error", command.Message)
}
