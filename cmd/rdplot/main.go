package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		logrus.Debugf("%+v", err)
		logrus.Fatalf("%v", err)
	}
}
