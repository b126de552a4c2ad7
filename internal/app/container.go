package app

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"github.com/readupapp/readup-go/internal/bus"
	"github.com/readupapp/readup-go/internal/config"
	"github.com/readupapp/readup-go/internal/googlebooks"
	"github.com/readupapp/readup-go/internal/imports"
	"github.com/readupapp/readup-go/internal/readup"
	"github.com/readupapp/readup-go/internal/reconcile"
	"github.com/readupapp/readup-go/internal/store"
)

// NewContainer wires the client object graph. Stores are explicit
// singletons resolved from the container rather than package globals, so
// two containers never share state.
func NewContainer(opts Options) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, opts)

	// Core infrastructure
	do.Provide(injector, provideConfig)
	do.Provide(injector, provideLogger)
	do.Provide(injector, provideBus)

	// Clients
	do.Provide(injector, provideAPIClient)
	do.Provide(injector, provideCatalogClient)

	// Reconciliation
	do.Provide(injector, provideReconciler)

	// Stores
	do.Provide(injector, provideShelfStore)
	do.Provide(injector, provideFollowStore)
	do.Provide(injector, provideEventStore)
	do.Provide(injector, provideForumStore)
	do.Provide(injector, provideRecommendationStore)
	do.Provide(injector, provideFeedStore)

	// Import tracking
	do.Provide(injector, provideImportWatcher)

	return injector
}

func provideConfig(i do.Injector) (config.Config, error) {
	opts := do.MustInvoke[Options](i)
	return config.Load(opts.ConfigPath)
}

func provideLogger(i do.Injector) (zerolog.Logger, error) {
	cfg := do.MustInvoke[config.Config](i)
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nil
}

func provideBus(do.Injector) (*bus.Bus, error) {
	return bus.New(), nil
}

func provideAPIClient(i do.Injector) (*readup.Client, error) {
	cfg := do.MustInvoke[config.Config](i)
	log := do.MustInvoke[zerolog.Logger](i)
	b := do.MustInvoke[*bus.Bus](i)

	client, err := readup.NewClient(cfg.APIBaseURL, cfg.APIToken, log)
	if err != nil {
		return nil, err
	}
	// A 401 anywhere logs the session out everywhere.
	client.SetOnUnauthorized(func() {
		log.Warn().Msg("session expired, logged out")
		b.Publish(bus.Message{Topic: bus.TopicLoggedOut})
	})
	return client, nil
}

func provideCatalogClient(i do.Injector) (*googlebooks.Client, error) {
	cfg := do.MustInvoke[config.Config](i)
	log := do.MustInvoke[zerolog.Logger](i)
	return googlebooks.NewClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey, log), nil
}

func provideReconciler(i do.Injector) (*reconcile.Reconciler, error) {
	api := do.MustInvoke[*readup.Client](i)
	log := do.MustInvoke[zerolog.Logger](i)
	return reconcile.New(api, log), nil
}

func provideShelfStore(i do.Injector) (*store.ShelfStore, error) {
	return store.NewShelfStore(
		do.MustInvoke[*readup.Client](i),
		do.MustInvoke[*reconcile.Reconciler](i),
		do.MustInvoke[*bus.Bus](i),
		do.MustInvoke[zerolog.Logger](i),
	), nil
}

func provideFollowStore(i do.Injector) (*store.FollowStore, error) {
	return store.NewFollowStore(
		do.MustInvoke[*readup.Client](i),
		do.MustInvoke[*reconcile.Reconciler](i),
		do.MustInvoke[*bus.Bus](i),
		do.MustInvoke[zerolog.Logger](i),
	), nil
}

func provideEventStore(i do.Injector) (*store.EventStore, error) {
	return store.NewEventStore(
		do.MustInvoke[*readup.Client](i),
		do.MustInvoke[zerolog.Logger](i),
	), nil
}

func provideForumStore(i do.Injector) (*store.ForumStore, error) {
	return store.NewForumStore(
		do.MustInvoke[*readup.Client](i),
		do.MustInvoke[zerolog.Logger](i),
	), nil
}

func provideRecommendationStore(i do.Injector) (*store.RecommendationStore, error) {
	return store.NewRecommendationStore(
		do.MustInvoke[*readup.Client](i),
		do.MustInvoke[*bus.Bus](i),
		do.MustInvoke[zerolog.Logger](i),
	), nil
}

func provideFeedStore(i do.Injector) (*store.FeedStore, error) {
	return store.NewFeedStore(
		do.MustInvoke[*readup.Client](i),
		do.MustInvoke[zerolog.Logger](i),
	), nil
}

func provideImportWatcher(i do.Injector) (*imports.Watcher, error) {
	return imports.NewWatcher(
		do.MustInvoke[*readup.Client](i),
		do.MustInvoke[zerolog.Logger](i),
	), nil
}
