package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func paramID(ctx *gin.Context, name string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New(name + " not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + name)
	}

	return uint(id), nil
}

func GetEventID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "event_id")
}

func GetTeamID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "team_id")
}

func GetMailID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "mail_id")
}

func GetSubmissionID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "submission_id")
}

func GetApplicationID(ctx *gin.Context) (uint, error) {
	return paramID(ctx, "application_id")
}
