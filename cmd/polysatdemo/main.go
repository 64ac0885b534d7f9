// Command polysatdemo drives the saturation engine against a few toy
// scenarios and prints the resulting lemma, the way cmd/gini drives a
// boolean solver against a DIMACS file.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// logLevelFlag adapts a logrus.Level to pflag.Value so it can be set
// from the command line as a name ("debug", "info", ...) rather than
// a boolean verbosity switch.
type logLevelFlag logrus.Level

var _ pflag.Value = (*logLevelFlag)(nil)

func (l *logLevelFlag) String() string {
	return logrus.Level(*l).String()
}

func (l *logLevelFlag) Set(s string) error {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return err
	}
	*l = logLevelFlag(lvl)
	return nil
}

func (l *logLevelFlag) Type() string {
	return "level"
}

var logLevel = logLevelFlag(logrus.InfoLevel)

func main() {
	root := &cobra.Command{
		Use:   "polysatdemo",
		Short: "Run toy scenarios through the saturation rule engine",
	}
	root.PersistentFlags().VarP(&logLevel, "log-level", "l", "log level: debug, info, warn, error")
	root.AddCommand(ugtxCmd())
	root.AddCommand(mulEq1Cmd())
	root.AddCommand(bitsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.Level(logLevel))
	return log
}
