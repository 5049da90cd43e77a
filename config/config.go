package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Exam         Exam
	GeminiApiKey string
	JwtSecret    string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Exam struct {
	// AssignmentWindowHours is how long a student has to start a test
	// after it is first assigned.
	AssignmentWindowHours int
	// GraderTimeoutSeconds bounds the external subjective-grading call.
	GraderTimeoutSeconds int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("ASSIGNMENT_WINDOW_HOURS", 24)
	viper.SetDefault("GRADER_TIMEOUT_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Exam.AssignmentWindowHours = viper.GetInt("ASSIGNMENT_WINDOW_HOURS")
	config.Exam.GraderTimeoutSeconds = viper.GetInt("GRADER_TIMEOUT_SECONDS")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.JwtSecret = viper.GetString("JWT_SECRET")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
