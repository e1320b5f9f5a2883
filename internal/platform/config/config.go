package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pstrings "tidv/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	MetricsAddr string

	// Base is this service's own public origin; the other bases are the
	// upstream hops the flow chains through.
	Base         string
	BenefitsBase string
	KongBase     string
	AccessBase   string

	BearerToken    string
	RedirectMode   bool
	ForceAuthLevel int

	ReferenceDataFile string

	LogLevel  string
	LogFormat string

	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string

	ShutdownTimeout time.Duration
}

// GUIDResolver captures configuration for the GUID resolver service.
type GUIDResolver struct {
	Addr            string
	NINO            string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LookupFunc reads one variable; os.Getenv satisfies it.
type LookupFunc func(key string) string

// FromEnv builds a Server config from environment variables so main stays
// lean. A .env file in the working directory is loaded first; it never
// overrides variables that are already set.
func FromEnv() Server {
	_ = godotenv.Load()
	return ServerFrom(os.Getenv)
}

// GUIDFromEnv builds the GUID resolver config from environment variables.
func GUIDFromEnv() GUIDResolver {
	_ = godotenv.Load()
	return GUIDResolverFrom(os.Getenv)
}

// ServerFrom builds a Server config from an arbitrary lookup.
func ServerFrom(get LookupFunc) Server {
	port := orDefault(get("PORT"), "10000")
	scheme := orDefault(get("BASE_SCHEME"), "https")
	baseHost := orDefault(get("BASE_HOST"), "localhost:"+port)

	upstream := func(baseKey, hostKey string) string {
		if v := get(baseKey); v != "" {
			return strings.TrimRight(v, "/")
		}
		return scheme + "://" + orDefault(get(hostKey), baseHost)
	}

	return Server{
		Addr:               ":" + port,
		MetricsAddr:        lookupOr(get, "METRICS_ADDR", ":9090"),
		Base:               scheme + "://" + baseHost,
		BenefitsBase:       upstream("BENEFITS_BASE", "BENEFITS_HOST"),
		KongBase:           upstream("KONG_BASE", "KONG_HOST"),
		AccessBase:         upstream("ACCESS_BASE", "ACCESS_HOST"),
		BearerToken:        orDefault(get("DEMO_BEARER_TOKEN"), orDefault(get("TOKEN"), "demo_token")),
		RedirectMode:       strings.ToLower(orDefault(get("REDIRECT_MODE"), "true")) == "true",
		ForceAuthLevel:     intOr(get("FORCE_AUTH_LEVEL"), 2),
		ReferenceDataFile:  get("REFERENCE_DATA_FILE"),
		LogLevel:           orDefault(get("LOG_LEVEL"), "info"),
		LogFormat:          orDefault(get("LOG_FORMAT"), "json"),
		RateLimitRPS:       floatOr(get("RATE_LIMIT_RPS"), 0),
		RateLimitBurst:     intOr(get("RATE_LIMIT_BURST"), 20),
		CORSAllowedOrigins: pstrings.SplitList(get("CORS_ALLOWED_ORIGINS"), ","),
		ShutdownTimeout:    durationOr(get("SHUTDOWN_TIMEOUT"), 10*time.Second),
	}
}

// GUIDResolverFrom builds a GUIDResolver config from an arbitrary lookup.
func GUIDResolverFrom(get LookupFunc) GUIDResolver {
	return GUIDResolver{
		Addr:            ":" + orDefault(get("GUID_PORT"), "10001"),
		NINO:            orDefault(get("GUID_NINO"), "AB123456C"),
		LogLevel:        orDefault(get("LOG_LEVEL"), "info"),
		LogFormat:       orDefault(get("LOG_FORMAT"), "json"),
		ShutdownTimeout: durationOr(get("SHUTDOWN_TIMEOUT"), 10*time.Second),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// lookupOr keeps an explicitly empty variable empty; os.Getenv cannot tell
// unset from empty, so "-" is accepted as the explicit off switch.
func lookupOr(get LookupFunc, key, def string) string {
	v := get(key)
	switch v {
	case "":
		return def
	case "-":
		return ""
	default:
		return v
	}
}

func intOr(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func floatOr(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func durationOr(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
