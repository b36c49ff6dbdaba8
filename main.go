package main

import (
	"github.com/urfave/cli/v2"
	"log"
	"os"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/backend"
	"vincit.fi/image-viewer/common"
	"vincit.fi/image-viewer/common/logger"
	"vincit.fi/image-viewer/common/loop"
	"vincit.fi/image-viewer/ui/giu"
)

const eventBusQueueSize = 1000

func main() {
	var logLevel string
	var settingsFile string
	var inMemory bool

	app := &cli.App{
		Name:      "image-viewer",
		Usage:     "View images and animations",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "logLevel",
				Aliases:     []string{"l"},
				Value:       "INFO",
				Usage:       "Log level: ERROR, WARN, INFO, DEBUG, TRACE",
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "settings",
				Aliases:     []string{"s"},
				Usage:       "Settings database file",
				Value:       common.DefaultSettingsFile(),
				Destination: &settingsFile,
			},
			&cli.BoolFlag{
				Name:        "memory",
				Usage:       "Keep settings in memory only",
				Destination: &inMemory,
			},
		},
		Action: func(cCtx *cli.Context) error {
			params := common.NewParams(logLevel, settingsFile, inMemory, cCtx.Args().First())
			run(params)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(params *common.Params) {
	logger.Initialize(logger.StringToLogLevel(params.LogLevel()))

	uiLoop := loop.New(loop.SystemClock())
	brokers := backend.InitializeEventBrokers(eventBusQueueSize, uiLoop.Post)
	stores := backend.InitializeStores(params, brokers)
	defer stores.Close()
	services := backend.InitializeServices(brokers)
	defer services.Close()

	gui := giu.NewUi(params, uiLoop, brokers.Broker, stores.SettingsStore)

	broker := brokers.Broker
	broker.ConnectToGui(api.DocumentLoaded, gui.DocumentLoaded)
	broker.ConnectToGui(api.ScalingFinished, gui.ScalingFinished)
	broker.ConnectToGui(api.SettingsChanged, gui.SettingsChanged)
	broker.ConnectToGui(api.AnimationPaused, gui.AnimationPaused)
	broker.ConnectToGui(api.AnimationError, gui.AnimationError)
	broker.ConnectToGui(api.DraggedOut, gui.DraggedOut)
	broker.ConnectToGui(api.ShowError, gui.ShowError)

	gui.Run()
}
