package handler

import (
	"net/http"

	"github.com/vinayw02/StepQuest/internal/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
