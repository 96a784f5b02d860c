package conf

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig reads the configuration file and sets defaults.
// The file is optional: without one, ida runs with the defaults below, and every
// option can still be set through IDA_* environment variables.
func LoadConfig() {
	log.Debug("Reading config file")
	viper.SetConfigName("ida-config")
	viper.AddConfigPath("$HOME/.ida")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./.ida")

	viper.SetDefault("DBPath", "$HOME/.ida/ida.db")
	viper.SetDefault("FeedRequestTimeout", 20)
	viper.SetDefault("UserAgent", "ida/1.0")
	viper.SetDefault("LogLevel", "info")

	viper.SetEnvPrefix("ida")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Panic("Fatal error reading config file: ", err)
		}
	}

	setLoggerLevel()
}

func setLoggerLevel() {
	switch viper.GetString("LogLevel") {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "panic":
		log.SetLevel(log.PanicLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	}
}
