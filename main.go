// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/httpext"
	"github.com/sapcc/go-bits/logg"

	"github.com/fivecmenu/menud/internal/api"
	"github.com/fivecmenu/menud/internal/cache"
	"github.com/fivecmenu/menud/internal/collector"
	"github.com/fivecmenu/menud/internal/core"
	"github.com/fivecmenu/menud/internal/datamodel"
	"github.com/fivecmenu/menud/internal/db"
	"github.com/fivecmenu/menud/internal/service"
)

func main() {
	// first two arguments must be task name and configuration file
	if len(os.Args) != 3 {
		printUsageAndExit()
	}
	taskName, configPath := os.Args[1], os.Args[2]

	cfg, err := core.NewConfiguration(configPath)
	if err != nil {
		logg.Fatal(err.Error())
	}

	var task func(core.Configuration) error
	switch taskName {
	case "serve":
		task = taskServe
	case "migrate":
		task = taskMigrate
	default:
		printUsageAndExit()
	}

	err = task(cfg)
	if err != nil {
		logg.Fatal(err.Error())
	}
}

var usageMessage = strings.Replace(strings.TrimSpace(`
Usage:
\t%s (serve|migrate) <config-file>
`), `\t`, "\t", -1) + "\n"

func printUsageAndExit() {
	fmt.Fprintln(os.Stderr, strings.Replace(usageMessage, "%s", os.Args[0], -1))
	os.Exit(1)
}

////////////////////////////////////////////////////////////////////////////////
// task: migrate

// Schema migrations run as a side effect of connecting, so this task only
// needs to establish a connection and exit. It exists so that deployments can
// apply migrations in an init job before rolling out new replicas.
func taskMigrate(cfg core.Configuration) error {
	dbConn, err := db.Init()
	if err != nil {
		return err
	}
	return dbConn.Close()
}

////////////////////////////////////////////////////////////////////////////////
// task: serve

func taskServe(cfg core.Configuration) error {
	ctx := httpext.ContextWithSIGINT(context.Background(), 10*time.Second)

	// connect to database
	dbConn, err := db.Init()
	if err != nil {
		logg.Fatal(err.Error())
	}
	dbMap := db.InitORM(dbConn)
	err = datamodel.SeedDiningHalls(dbMap)
	if err != nil {
		logg.Fatal("could not seed dining halls: " + err.Error())
	}

	// choose the cache backend
	var backend cache.Backend
	if cfg.RedisURL == "" {
		backend = cache.NewMemoryBackend()
	} else {
		backend, err = cache.NewRedisBackend(ctx, cfg.RedisURL)
		if err != nil {
			logg.Fatal("could not connect to Redis: " + err.Error())
		}
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logg.Fatal(err.Error()) // unreachable, NewConfiguration validates this
	}

	// assemble the request pipeline
	c := collector.NewCollector(dbMap)
	menus := service.NewMenuService(c, cache.NewMenuCache(backend))
	hours := service.NewHoursService(dbMap, loc)
	handler := httpapi.Compose(
		api.NewV1API(dbMap, menus, hours),
		httpapi.WithGlobalMiddleware(func(inner http.Handler) http.Handler {
			return cors.New(cors.Options{
				AllowedOrigins: cfg.CORSAllowedOrigins,
				AllowedMethods: []string{"HEAD", "GET"},
				AllowedHeaders: []string{"Content-Type", "User-Agent"},
			}).Handler(inner)
		}),
	)
	http.Handle("/", handler)
	http.Handle("/metrics", promhttp.Handler())

	// start HTTP server
	logg.Info("listening on " + cfg.ListenAddress)
	return httpext.ListenAndServeContext(ctx, cfg.ListenAddress, nil)
}
