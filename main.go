// @title Event Judging System API
// @version 1.0
// @description Backend API for judging hackathon teams over two scored rounds

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	_ "github.com/alex-pricope/event-judging-system/docs"

	"github.com/alex-pricope/event-judging-system/api"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"strings"
)

func main() {
	logging.BoostrapLogger()

	// Local overrides, absent in lambda
	if err := godotenv.Load(); err != nil {
		logging.Log.Debugf("no .env file loaded: %v", err)
	}

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()
	logging.SetLevel(config.LogLevel)

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
