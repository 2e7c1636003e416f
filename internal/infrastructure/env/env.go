package env

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"agent-pipeline/internal/application/port/output"

	"github.com/joho/godotenv"
)

var _ output.ConfigPort = (*EnvService)(nil)

const (
	KeyAPIKey         = "GROQ_API_KEY"
	KeyModel          = "LLM_MODEL"
	KeyBaseURL        = "LLM_BASE_URL"
	KeyBackend        = "LLM_BACKEND"
	KeyLogHTTP        = "LLM_LOG_HTTP"
	KeyTargetLanguage = "TARGET_LANGUAGE"
	KeyFailurePolicy  = "FAILURE_POLICY"
)

type EnvService struct{}

// NewEnvService loads .env and then .env.<APP_ENV> on top of it. Both files are
// optional.
func NewEnvService() *EnvService {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Info: no .env file found, using process environment")
	}

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load %s: %v", envFile, err)
	}

	return &EnvService{}
}

func (e *EnvService) Get(key string) string {
	return os.Getenv(key)
}

func (e *EnvService) GetWithDefault(key string, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
