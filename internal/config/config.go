// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	DatabasePath string
	JWTSecretKey string
	AdminEmail   string

	// Vision model configuration
	VisionAPIKey  string
	VisionBaseURL string
	VisionModel   string

	// Payment provider configuration
	StripeSecretKey           string
	StripeWebhookSecret       string
	StripeSubscriptionPriceID string
	StripeCreditPackPriceID   string
	CreditPackSize            int
	CheckoutSuccessURL        string
	CheckoutCancelURL         string
	PortalReturnURL           string
	FrontendURL               string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		Environment:  env,
		DatabasePath: getEnv("DB_PATH", "dresai.db"),
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		VisionAPIKey:  getEnv("VISION_API_KEY", ""),
		VisionBaseURL: getEnv("VISION_BASE_URL", ""),
		VisionModel:   getEnv("VISION_MODEL_NAME", "gpt-4o"),

		StripeSecretKey:           getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:       getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripeSubscriptionPriceID: getEnv("STRIPE_SUBSCRIPTION_PRICE_ID", ""),
		StripeCreditPackPriceID:   getEnv("STRIPE_CREDIT_PACK_PRICE_ID", ""),
		CreditPackSize:            getEnvAsInt("CREDIT_PACK_SIZE", 10),
		CheckoutSuccessURL:        getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:8080/payment/success?session_id={CHECKOUT_SESSION_ID}&payment_success=true"),
		CheckoutCancelURL:         getEnv("CHECKOUT_CANCEL_URL", "http://localhost:8080/pricing"),
		PortalReturnURL:           getEnv("PORTAL_RETURN_URL", "http://localhost:8080/account"),
		FrontendURL:               getEnv("FRONTEND_URL", "http://localhost:8080"),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.VisionAPIKey == "" {
			missing = append(missing, "VISION_API_KEY")
		}
		if cfg.StripeSecretKey == "" {
			missing = append(missing, "STRIPE_SECRET_KEY")
		}
		if cfg.StripeWebhookSecret == "" {
			missing = append(missing, "STRIPE_WEBHOOK_SECRET")
		}
		if cfg.StripeSubscriptionPriceID == "" {
			missing = append(missing, "STRIPE_SUBSCRIPTION_PRICE_ID")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
