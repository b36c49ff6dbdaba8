package backend

import (
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/backend/database"
	"vincit.fi/image-viewer/backend/document"
	"vincit.fi/image-viewer/backend/scaler"
	"vincit.fi/image-viewer/backend/settings"
	"vincit.fi/image-viewer/common"
	"vincit.fi/image-viewer/common/event"
	"vincit.fi/image-viewer/common/logger"
)

const documentCacheSize = 8

type Stores struct {
	SettingsStore *settings.Store
}

func (s *Stores) Close() {
	s.SettingsStore.Close()
}

type Services struct {
	DocumentLoader api.DocumentLoader
	Scaler         api.Scaler
	sender         api.Sender
}

func (s *Services) Close() {
	defer s.DocumentLoader.Purge()
	defer s.Scaler.Close()
}

// OpenDocument loads the document in path and publishes it to the GUI.
// Failures are reported through ShowError so the current image stays visible.
func (s *Services) OpenDocument(command *api.OpenDocumentCommand) {
	logger.Debug.Printf("Opening document '%s'", command.Path)
	document, err := s.DocumentLoader.LoadDocument(command.Path)
	if err != nil {
		s.sender.SendError("Could not open "+command.Path, err)
		return
	}
	s.sender.SendCommandToTopic(api.DocumentLoaded, &api.DocumentLoadedCommand{Document: document})
}

type Brokers struct {
	Broker *event.Broker
}

func InitializeEventBrokers(eventBusQueueSize int, dispatch event.Dispatcher) *Brokers {
	logger.Debug.Printf("Initialize event brokers...")
	brokers := &Brokers{
		Broker: event.InitBus(eventBusQueueSize, dispatch),
	}
	logger.Debug.Printf("Event brokers initialized")
	return brokers
}

func InitializeServices(brokers *Brokers) *Services {
	logger.Debug.Printf("Initialize services...")
	services := &Services{
		DocumentLoader: document.NewLoader(documentCacheSize),
		Scaler:         scaler.NewScaler(brokers.Broker),
		sender:         brokers.Broker,
	}

	brokers.Broker.Subscribe(api.OpenDocument, services.OpenDocument)
	brokers.Broker.Subscribe(api.ScalingRequested, services.Scaler.RequestScaled)
	logger.Debug.Printf("Services initialized")
	return services
}

// InitializeStores opens the settings database. With in-memory params
// nothing is written to disk and settings are lost on exit.
func InitializeStores(params *common.Params, brokers *Brokers) *Stores {
	logger.Debug.Printf("Initialize databases...")
	var settingsDb *database.Database
	if params.InMemory() {
		settingsDb = database.NewInMemoryDatabase()
	} else {
		settingsDb = database.NewDatabase()
		if err := settingsDb.InitializeForFile(params.SettingsFile()); err != nil {
			logger.Error.Fatal("Error opening database ", err)
		} else if _, err := settingsDb.Migrate(); err != nil {
			logger.Error.Fatal("Error while running migrations ", err)
		}
	}

	logger.Debug.Printf("Initialize backend stores...")
	stores := &Stores{
		SettingsStore: settings.NewStore(settingsDb, brokers.Broker),
	}
	logger.Debug.Printf("Stores and databases initialized")
	return stores
}
