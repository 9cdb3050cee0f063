package app

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/doeshing/voxa/internal/application/dispatch"
	"github.com/doeshing/voxa/internal/application/eventloop"
	"github.com/doeshing/voxa/internal/application/resolve"
	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/infrastructure/audio"
	"github.com/doeshing/voxa/internal/infrastructure/cache"
	"github.com/doeshing/voxa/internal/infrastructure/config"
	"github.com/doeshing/voxa/internal/infrastructure/handlers"
	"github.com/doeshing/voxa/internal/infrastructure/nlu"
	"github.com/doeshing/voxa/internal/infrastructure/reminders"
	"github.com/doeshing/voxa/internal/infrastructure/security"
	"github.com/doeshing/voxa/internal/infrastructure/trigger"
	"github.com/doeshing/voxa/internal/pkg/logger"
	"github.com/doeshing/voxa/internal/ports"
)

// Options controls container construction.
type Options struct {
	ConfigPath string
	SocketPath string
	Verbose    bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	Logger        ports.Logger
	Audio         ports.Audio
	Resolver      *resolve.Service
	Validator     *security.Validator
	Dispatcher    *dispatch.Service
	Loop          *eventloop.Loop
	Trigger       *trigger.SocketListener
	Registry      ports.HandlerRegistry
	CacheStore    ports.CacheRepository
	ReminderStore ports.ReminderStore
	Personal      *handlers.PersonalHandler
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	// .env is optional, absence is not an error
	_ = godotenv.Load()

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	level := cfg.GetLogLevel()
	if opts.Verbose {
		level = "debug"
	}
	log := logger.New(level, cfg.GetLogFormat())

	var cacheStore ports.CacheRepository
	cacheStore, err = cache.NewSQLiteCache("")
	if err != nil {
		log.Warn("cache database unavailable, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
		cacheStore = cache.NewMemoryCache()
	}

	reminderStore, err := reminders.NewSQLiteStore("")
	if err != nil {
		return nil, err
	}

	validator, err := security.NewValidator(cfg.Privacy.PolicyFile)
	if err != nil {
		return nil, err
	}

	var client ports.CompletionClient
	var answerer handlers.Answerer
	if nluClient, err := nlu.New(cfg); err != nil {
		log.Info("remote classifier disabled, using fallback only", map[string]interface{}{
			"reason": err.Error(),
		})
	} else {
		client = nluClient
		answerer = nluClient
	}

	resolver := &resolve.Service{
		Client:    client,
		Cache:     cacheStore,
		Config:    cfg,
		Logger:    log,
		Sensitive: validator.SensitiveMatcher(),
	}

	speech := audio.NewExecAudio(cfg, log)

	apps := handlers.NewAppsHandler(cfg, log)
	info := handlers.NewInfoHandler(cfg, log, answerer)
	web := handlers.NewWebHandler(cfg, log)
	media := handlers.NewMediaHandler(cfg, log)
	comms := handlers.NewCommsHandler(cfg, log)
	system := handlers.NewSystemHandler(cfg, log)
	personal := handlers.NewPersonalHandler(reminderStore, speech, log)

	registry := handlers.NewRegistry(map[string]ports.Handler{
		domain.IntentOpenApp:      handlers.HandlerFunc(apps.Open),
		domain.IntentCloseApp:     handlers.HandlerFunc(apps.Close),
		domain.IntentGetWeather:   handlers.HandlerFunc(info.Weather),
		domain.IntentGetNews:      handlers.HandlerFunc(info.News),
		domain.IntentGetTime:      handlers.HandlerFunc(info.Time),
		domain.IntentGetDate:      handlers.HandlerFunc(info.Date),
		domain.IntentSystemInfo:   handlers.HandlerFunc(info.SystemInfo),
		domain.IntentGeneralQuery: handlers.HandlerFunc(info.GeneralQuery),
		domain.IntentSearchWeb:    handlers.HandlerFunc(web.SearchWeb),
		domain.IntentSearchYT:     handlers.HandlerFunc(web.SearchYouTube),
		domain.IntentSearchWiki:   handlers.HandlerFunc(web.SearchWikipedia),
		domain.IntentPlayMusic:    handlers.HandlerFunc(media.Play),
		domain.IntentPauseMusic:   handlers.HandlerFunc(media.PauseResume),
		domain.IntentSendEmail:    handlers.HandlerFunc(comms.SendEmail),
		domain.IntentSetReminder:  handlers.HandlerFunc(personal.SetReminder),
		domain.IntentSetTimer:     handlers.HandlerFunc(personal.SetTimer),
		domain.IntentShutdown:     handlers.HandlerFunc(system.Shutdown),
		domain.IntentRestart:      handlers.HandlerFunc(system.Restart),
	})

	dispatcher := dispatch.NewService(validator, registry, log, cfg.GetCommandTimeout(), cfg.GetHistoryLimit())
	loop := eventloop.New(resolver, dispatcher, speech, log, cfg)
	socket := trigger.NewSocketListener(opts.SocketPath, log)

	return &Container{
		Config:        cfg,
		ConfigLoader:  cfgLoader,
		Logger:        log,
		Audio:         speech,
		Resolver:      resolver,
		Validator:     validator,
		Dispatcher:    dispatcher,
		Loop:          loop,
		Trigger:       socket,
		Registry:      registry,
		CacheStore:    cacheStore,
		ReminderStore: reminderStore,
		Personal:      personal,
	}, nil
}

// Close releases the container's persistent resources.
func (c *Container) Close() error {
	if c.Personal != nil {
		c.Personal.StopAll()
	}
	if c.Trigger != nil {
		_ = c.Trigger.Close()
	}
	if c.ReminderStore != nil {
		_ = c.ReminderStore.Close()
	}
	if c.CacheStore != nil {
		return c.CacheStore.Close()
	}
	return nil
}
