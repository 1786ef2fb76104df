package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

// GetLogger retorna o logger global da aplicação.
func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetOutput(os.Stdout)

	nivel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		nivel = logrus.InfoLevel
	}
	logg.SetLevel(nivel)
}
