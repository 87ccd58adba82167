// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/respondwith"

	"github.com/fivecmenu/menud/internal/core"
)

// GetMenu handles GET /v1/menus.
func (p *v1Provider) GetMenu(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/v1/menus")

	query := r.URL.Query()
	hallID := query.Get("hall_id")
	dateStr := query.Get("date")
	meal := query.Get("meal")
	if hallID == "" || dateStr == "" || meal == "" {
		http.Error(w, "missing required query parameters: hall_id, date, meal", http.StatusBadRequest)
		return
	}

	menu, err := p.Menus.GetMenu(r.Context(), hallID, dateStr, meal)
	switch {
	case errors.Is(err, core.ErrUnknownHall):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, core.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case respondwith.ErrorText(w, err):
		return
	}

	if menu == nil {
		msg := fmt.Sprintf("no menu found for %s on %s for %s", hallID, dateStr, meal)
		http.Error(w, msg, http.StatusNotFound)
		return
	}
	respondwith.JSON(w, http.StatusOK, menu)
}
