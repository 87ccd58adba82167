// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/respondwith"

	"github.com/fivecmenu/menud/internal/db"
)

// HallData is one entry in the /v1/halls response.
type HallData struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	College string  `json:"college"`
	Vendor  string  `json:"vendor_type"`
	Color   *string `json:"color"`
}

// ListHalls handles GET /v1/halls.
func (p *v1Provider) ListHalls(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/v1/halls")

	var rows []db.DiningHall
	_, err := p.DB.Select(&rows, `SELECT * FROM dining_halls ORDER BY id`)
	if respondwith.ErrorText(w, err) {
		return
	}

	halls := make([]HallData, 0, len(rows))
	for _, row := range rows {
		halls = append(halls, HallData{
			ID:      row.ID,
			Name:    row.Name,
			College: row.College,
			Vendor:  row.Vendor,
			Color:   row.Color,
		})
	}
	respondwith.JSON(w, http.StatusOK, map[string]any{"halls": halls})
}

// ListOpenHalls handles GET /v1/open-now.
func (p *v1Provider) ListOpenHalls(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/v1/open-now")

	openHalls, err := p.Hours.GetOpenHalls()
	if respondwith.ErrorText(w, err) {
		return
	}
	respondwith.JSON(w, http.StatusOK, map[string]any{"open": openHalls})
}
