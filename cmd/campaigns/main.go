package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/marketing-analytics-api/pkg/log"
)

func main() {
	log.Configure(os.Getenv("LOG_LEVEL"))

	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("Comando falhou")
		os.Exit(1)
	}
}
