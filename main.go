package main

import (
	"academy-api/core/logger"
	"academy-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
