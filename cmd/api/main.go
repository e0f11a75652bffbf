package main

import (
	"log"
	"os"

	"picktracker/cmd"

	"go.uber.org/zap"
)

func main() {
	zap.S().Infow("starting api", "commitHash", os.Getenv("commit_hash"))
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	err = deps.ApiHandler.StartApi(deps.Config.ApiPort)
	if err != nil {
		log.Fatal(err)
	}
}
