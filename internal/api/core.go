// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

// Package api serves the v1 HTTP API.
package api

import (
	"net/http"

	"github.com/go-gorp/gorp/v3"
	"github.com/gorilla/mux"
	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/respondwith"

	"github.com/fivecmenu/menud/internal/service"
)

// VersionData is used by version advertisement handlers.
type VersionData struct {
	Status string            `json:"status"`
	ID     string            `json:"id"`
	Links  []VersionLinkData `json:"links"`
}

// VersionLinkData is used by version advertisement handlers, as part of the
// VersionData struct.
type VersionLinkData struct {
	URL      string `json:"href"`
	Relation string `json:"rel"`
}

type v1Provider struct {
	DB          *gorp.DbMap
	Menus       *service.MenuService
	Hours       *service.HoursService
	VersionData VersionData
}

// NewV1API creates an httpapi.API that serves the menu v1 API.
func NewV1API(dbm *gorp.DbMap, menus *service.MenuService, hours *service.HoursService) httpapi.API {
	p := &v1Provider{DB: dbm, Menus: menus, Hours: hours}
	p.VersionData = VersionData{
		Status: "CURRENT",
		ID:     "v1",
		Links: []VersionLinkData{
			{Relation: "self", URL: "/v1/"},
		},
	}
	return p
}

// AddTo implements the httpapi.API interface.
func (p *v1Provider) AddTo(r *mux.Router) {
	r.Methods("HEAD", "GET").Path("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpapi.IdentifyEndpoint(r, "/")
		httpapi.SkipRequestLog(r)
		respondwith.JSON(w, http.StatusMultipleChoices, map[string]any{"versions": []VersionData{p.VersionData}})
	})

	r.Methods("GET").Path("/v1/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpapi.IdentifyEndpoint(r, "/v1/")
		httpapi.SkipRequestLog(r)
		respondwith.JSON(w, http.StatusOK, map[string]any{"version": p.VersionData})
	})

	r.Methods("GET").Path("/v1/menus").HandlerFunc(p.GetMenu)
	r.Methods("GET").Path("/v1/halls").HandlerFunc(p.ListHalls)
	r.Methods("GET").Path("/v1/open-now").HandlerFunc(p.ListOpenHalls)
}
