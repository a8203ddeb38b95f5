package handlers

import (
	"net/http"

	"github.com/GovThePPL/candid-sub000/internal/transport/http/dto"
	httperrors "github.com/GovThePPL/candid-sub000/internal/transport/http/errors"
)

func Health(w http.ResponseWriter, _ *http.Request) {
	httperrors.Write(w, http.StatusOK, dto.HealthResponse{OK: true})
}
